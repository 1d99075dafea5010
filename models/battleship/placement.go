package battleship

import (
	"regexp"

	"github.com/hashicorp/go-multierror"
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

const MaxNameLength = 35

const (
	MsgInvalidName      = "Invalid name, please only use letters or spaces and limit name to 35 characters or less."
	MsgInvalidPlacement = "Invalid placement, please follow the format A([cell range]);B([cell range]);S([cell range]); and make sure: " +
		"the length of your ships are correct (5 for A, 4 for B, and 3 for S), " +
		"your ships are not overlapping, " +
		"your ships are horizontal or vertical (not diagonal)"
)

var (
	nameRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)

	// Tags are positional: carrier, battleship, submarine.
	placementRegex = regexp.MustCompile(
		`^A\(([A-J](?:10|[1-9])-[A-J](?:10|[1-9]))\);` +
			`B\(([A-J](?:10|[1-9])-[A-J](?:10|[1-9]))\);` +
			`S\(([A-J](?:10|[1-9])-[A-J](?:10|[1-9]))\);$`,
	)
)

func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength || !nameRegex.MatchString(name) {
		return cerr.ErrNameInvalid(name)
	}
	return nil
}

// ParsePlacement turns a placement string like
// "A(A1-A5);B(B6-E6);S(H3-J3);" into carrier, battleship and submarine,
// in that order.
func ParsePlacement(placement string) ([]*Ship, error) {
	if placement == "" {
		return nil, cerr.ErrPlacementEmpty()
	}

	matches := placementRegex.FindStringSubmatch(placement)
	if matches == nil {
		return nil, cerr.ErrPlacementFormat(placement)
	}

	ships := make([]*Ship, 0, len(FleetTypes))
	for _, interval := range matches[1:] {
		ship, err := NewShip(interval)
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
	}

	for i, ship := range ships {
		if !ship.IsHorizontalOrVertical() {
			return nil, cerr.ErrShipDiagonal(FleetTypes[i].Tag())
		}
	}

	for i, ship := range ships {
		if expected := FleetTypes[i].Length(); ship.Len() != expected {
			return nil, cerr.ErrShipLength(FleetTypes[i].Tag(), expected, ship.Len())
		}
	}

	for i := 0; i < len(ships); i++ {
		for j := i + 1; j < len(ships); j++ {
			if ships[i].Overlaps(ships[j]) {
				return nil, cerr.ErrShipsOverlap(FleetTypes[i].Tag(), FleetTypes[j].Tag())
			}
		}
	}

	return ships, nil
}

// Validate checks both the name and the placement and reports every
// failure at once. Only when both are valid are the three ships appended
// to ships; on failure ships is left untouched.
func Validate(name, placement string, ships *[]*Ship) error {
	var result *multierror.Error

	if err := ValidateName(name); err != nil {
		result = multierror.Append(result, err)
	}

	fleet, err := ParsePlacement(placement)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	*ships = append(*ships, fleet...)
	return nil
}
