package battleship

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

type ShipType uint8

const (
	ShipTypeNone ShipType = iota
	ShipTypeCarrier
	ShipTypeBattleship
	ShipTypeSubmarine
)

const (
	CarrierLength    = 5
	BattleshipLength = 4
	SubmarineLength  = 3

	// Total number of occupied cells in a fleet
	FleetCells = CarrierLength + BattleshipLength + SubmarineLength
)

// Fleet order used everywhere: placement clauses, board construction
// and hit bookkeeping.
var FleetTypes = [...]ShipType{ShipTypeCarrier, ShipTypeBattleship, ShipTypeSubmarine}

func (t ShipType) Length() int {
	switch t {
	case ShipTypeCarrier:
		return CarrierLength
	case ShipTypeBattleship:
		return BattleshipLength
	case ShipTypeSubmarine:
		return SubmarineLength
	default:
		return 0
	}
}

// Tag is the single letter used in placement strings and board views.
func (t ShipType) Tag() string {
	switch t {
	case ShipTypeCarrier:
		return "A"
	case ShipTypeBattleship:
		return "B"
	case ShipTypeSubmarine:
		return "S"
	default:
		return ""
	}
}

func (t ShipType) String() string {
	switch t {
	case ShipTypeCarrier:
		return "Carrier"
	case ShipTypeBattleship:
		return "Battleship"
	case ShipTypeSubmarine:
		return "Submarine"
	default:
		return "None"
	}
}

func shipTypeFromLength(length int) ShipType {
	switch length {
	case CarrierLength:
		return ShipTypeCarrier
	case BattleshipLength:
		return ShipTypeBattleship
	case SubmarineLength:
		return ShipTypeSubmarine
	default:
		return ShipTypeNone
	}
}

var columnNumbers = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5,
	'F': 6, 'G': 7, 'H': 8, 'I': 9, 'J': 10,
}

// Ship is the ordered list of spots between two endpoints.
type Ship struct {
	spots []Spot
}

// NewShip expands an interval such as "A1-A5" into its spots. Only the
// syntax of the two endpoints is checked here; orientation, bounds and
// length are left to the placement validator.
//
// The expansion walks forward along the constant axis, so "A5-A1" gives
// only its two endpoints and a diagonal interval keeps the first row.
func NewShip(interval string) (*Ship, error) {
	c0, r0, c1, r1, err := parseInterval(interval)
	if err != nil {
		return nil, err
	}

	first := NewSpot(c0, r0)
	last := NewSpot(c1, r1)
	spots := []Spot{first}

	if c0 == c1 {
		for row := r0 + 1; row < r1; row++ {
			spots = append(spots, NewSpot(c0, row))
		}
	} else {
		for col := c0 + 1; col < c1; col++ {
			spots = append(spots, NewSpot(col, r0))
		}
	}

	if !last.Equals(first) {
		spots = append(spots, last)
	}
	return &Ship{spots: spots}, nil
}

func parseInterval(interval string) (c0, r0, c1, r1 int, err error) {
	parts := strings.Split(interval, "-")
	if len(parts) != 2 {
		return 0, 0, 0, 0, cerr.ErrIntervalMalformed(interval)
	}

	c0, r0, err = parseCell(parts[0])
	if err != nil {
		return 0, 0, 0, 0, cerr.ErrIntervalMalformed(interval)
	}
	c1, r1, err = parseCell(parts[1])
	if err != nil {
		return 0, 0, 0, 0, cerr.ErrIntervalMalformed(interval)
	}
	return c0, r0, c1, r1, nil
}

// parseCell returns the 1-indexed column and row of a cell like "J10".
func parseCell(cell string) (int, int, error) {
	if len(cell) < 2 {
		return 0, 0, cerr.ErrIntervalMalformed(cell)
	}

	col, ok := columnNumbers[cell[0]]
	if !ok {
		return 0, 0, cerr.ErrIntervalMalformed(cell)
	}

	row, err := strconv.Atoi(cell[1:])
	if err != nil {
		return 0, 0, cerr.ErrIntervalMalformed(cell)
	}
	return col, row, nil
}

func (sh *Ship) Len() int {
	return len(sh.spots)
}

// Type is derived from the number of spots.
func (sh *Ship) Type() ShipType {
	return shipTypeFromLength(len(sh.spots))
}

func (sh *Ship) Spots() []Spot {
	spots := make([]Spot, len(sh.spots))
	copy(spots, sh.spots)
	return spots
}

func (sh *Ship) FirstSpot() Spot {
	return sh.spots[0]
}

func (sh *Ship) LastSpot() Spot {
	return sh.spots[len(sh.spots)-1]
}

// IsHorizontalOrVertical only compares the endpoints. The spots in
// between were generated along a single axis.
func (sh *Ship) IsHorizontalOrVertical() bool {
	first, last := sh.FirstSpot(), sh.LastSpot()
	return first.Col == last.Col || first.Row == last.Row
}

func (sh *Ship) Overlaps(other *Ship) bool {
	for _, spot := range sh.spots {
		if other.Contains(spot) {
			return true
		}
	}
	return false
}

func (sh *Ship) Contains(spot Spot) bool {
	for _, s := range sh.spots {
		if s.Equals(spot) {
			return true
		}
	}
	return false
}

func (sh *Ship) String() string {
	var b strings.Builder
	for i, spot := range sh.spots {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(spot.String())
	}
	return b.String()
}
