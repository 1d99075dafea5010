package battleship_test

import (
	"errors"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
)

const validPlacement = "A(A1-A5);B(B6-E6);S(H3-J3);"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		isValid bool
	}{
		{name: "single word", input: "Alice", isValid: true},
		{name: "with spaces", input: "Mary Jane Watson", isValid: true},
		{name: "max length", input: strings.Repeat("a", mb.MaxNameLength), isValid: true},
		{name: "empty", input: "", isValid: false},
		{name: "too long", input: strings.Repeat("a", mb.MaxNameLength+1), isValid: false},
		{name: "digit", input: "R2D2", isValid: false},
		{name: "symbol", input: "bob!", isValid: false},
		{name: "tab", input: "bob\tsmith", isValid: false},
		{name: "non ascii letter", input: "Zoë", isValid: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := mb.ValidateName(test.input)
			if test.isValid && err != nil {
				t.Fatalf("expected valid name\tgot: %v", err)
			}
			if !test.isValid && !errors.Is(err, cerr.ErrInvalidName) {
				t.Fatalf("expected invalid name error\tgot: %v", err)
			}
		})
	}
}

func TestParsePlacement(t *testing.T) {
	ships, err := mb.ParsePlacement(validPlacement)
	if err != nil {
		t.Fatal(err)
	}

	expectedTypes := []mb.ShipType{mb.ShipTypeCarrier, mb.ShipTypeBattleship, mb.ShipTypeSubmarine}
	expectedLengths := []int{5, 4, 3}
	if len(ships) != 3 {
		t.Fatalf("expected 3 ships\tgot: %d", len(ships))
	}
	for i, ship := range ships {
		if ship.Type() != expectedTypes[i] || ship.Len() != expectedLengths[i] {
			t.Fatalf("ship %d: expected %s of length %d\tgot: %s of length %d",
				i, expectedTypes[i], expectedLengths[i], ship.Type(), ship.Len())
		}
	}
}

func TestParsePlacementInvalid(t *testing.T) {
	tests := []struct {
		name      string
		placement string
	}{
		{name: "empty", placement: ""},
		{name: "wrong tag order", placement: "B(B6-E6);A(A1-A5);S(H3-J3);"},
		{name: "missing trailing semicolon", placement: "A(A1-A5);B(B6-E6);S(H3-J3)"},
		{name: "leading junk", placement: "x" + validPlacement},
		{name: "trailing junk", placement: validPlacement + "x"},
		{name: "row zero", placement: "A(A0-A4);B(B6-E6);S(H3-J3);"},
		{name: "row eleven", placement: "A(A7-A11);B(B6-E6);S(H3-J3);"},
		{name: "leading zero", placement: "A(A01-A05);B(B6-E6);S(H3-J3);"},
		{name: "column out of grid", placement: "A(K1-K5);B(B6-E6);S(H3-J3);"},
		{name: "lowercase", placement: "a(a1-a5);b(b6-e6);s(h3-j3);"},
		{name: "diagonal carrier", placement: "A(A1-E5);B(B6-E6);S(H3-J3);"},
		{name: "short carrier", placement: "A(A1-A4);B(B6-E6);S(H3-J3);"},
		{name: "long battleship", placement: "A(A1-A5);B(B6-F6);S(H3-J3);"},
		{name: "short submarine", placement: "A(A1-A5);B(B6-E6);S(H3-I3);"},
		{name: "reversed carrier", placement: "A(A5-A1);B(B6-E6);S(H3-J3);"},
		{name: "carrier and battleship overlap", placement: "A(A1-A5);B(A2-D2);S(H3-J3);"},
		{name: "carrier and submarine overlap", placement: "A(A1-E1);B(B6-E6);S(C1-C3);"},
		{name: "battleship and submarine overlap", placement: "A(A1-A5);B(B6-E6);S(C5-C7);"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ships, err := mb.ParsePlacement(test.placement)
			if !errors.Is(err, cerr.ErrInvalidPlacement) {
				t.Fatalf("expected invalid placement error\tgot: %v", err)
			}
			if ships != nil {
				t.Fatalf("expected no ships\tgot: %d", len(ships))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name                string
		playerName          string
		placement           string
		nameInvalid         bool
		placementInvalid    bool
		expectedShipsLength int
	}{
		{name: "valid", playerName: "Alice", placement: validPlacement, expectedShipsLength: 3},
		{name: "invalid name", playerName: "Al1ce", placement: validPlacement, nameInvalid: true},
		{name: "invalid placement", playerName: "Alice", placement: "A(A1-A5);B(A2-D2);S(H3-J3);", placementInvalid: true},
		{name: "both invalid", playerName: "", placement: "", nameInvalid: true, placementInvalid: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ships := make([]*mb.Ship, 0, 3)
			err := mb.Validate(test.playerName, test.placement, &ships)

			if errors.Is(err, cerr.ErrInvalidName) != test.nameInvalid {
				t.Fatalf("expected name invalid: %t\tgot: %v", test.nameInvalid, err)
			}
			if errors.Is(err, cerr.ErrInvalidPlacement) != test.placementInvalid {
				t.Fatalf("expected placement invalid: %t\tgot: %v", test.placementInvalid, err)
			}
			if len(ships) != test.expectedShipsLength {
				t.Fatalf("expected ships length: %d\tgot: %d", test.expectedShipsLength, len(ships))
			}
		})
	}
}
