package battleship

import "fmt"

// Spot is a single cell of the grid. Col and Row are zero-indexed.
type Spot struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// NewSpot converts a user facing 1-indexed column/row into a Spot.
func NewSpot(col, row int) Spot {
	return Spot{Col: col - 1, Row: row - 1}
}

func (s Spot) Equals(other Spot) bool {
	return s.Col == other.Col && s.Row == other.Row
}

func (s Spot) String() string {
	return fmt.Sprintf("[%d:%d]", s.Col, s.Row)
}
