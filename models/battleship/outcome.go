package battleship

// Outcome is the result of firing at a board.
type Outcome uint8

const (
	OutcomeDoubleFire Outcome = iota
	OutcomeMiss
	OutcomeHit
	OutcomeCarrierSunk
	OutcomeBattleshipSunk
	OutcomeSubmarineSunk
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDoubleFire:
		return "DoubleFire"
	case OutcomeMiss:
		return "Miss"
	case OutcomeHit:
		return "Hit"
	case OutcomeCarrierSunk:
		return "CarrierSunk"
	case OutcomeBattleshipSunk:
		return "BattleshipSunk"
	case OutcomeSubmarineSunk:
		return "SubmarineSunk"
	default:
		return "Unknown"
	}
}

// Message is the text shown to the player who fired.
func (o Outcome) Message() string {
	switch o {
	case OutcomeDoubleFire:
		return "You already fired there. Please select another space."
	case OutcomeMiss:
		return "Miss!"
	case OutcomeHit:
		return "Hit!"
	case OutcomeCarrierSunk:
		return "You sunk an aircraft carrier!"
	case OutcomeBattleshipSunk:
		return "You sunk a battleship!"
	case OutcomeSubmarineSunk:
		return "You sunk a submarine!"
	default:
		return ""
	}
}

func (o Outcome) IsSunk() bool {
	return o == OutcomeCarrierSunk || o == OutcomeBattleshipSunk || o == OutcomeSubmarineSunk
}

func sunkOutcome(t ShipType) Outcome {
	switch t {
	case ShipTypeCarrier:
		return OutcomeCarrierSunk
	case ShipTypeBattleship:
		return OutcomeBattleshipSunk
	default:
		return OutcomeSubmarineSunk
	}
}
