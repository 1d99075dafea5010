package battleship

const GridSize = 10

const (
	ValidLowerBound = 0
	ValidUpperBound = GridSize - 1
)

// Mark is the shot state of a cell. A cell is never both hit and missed.
type Mark uint8

const (
	MarkUnknown Mark = iota
	MarkHit
	MarkMiss
)

// Cell holds what occupies a position (ShipTypeNone for water) and
// whether it has been shot at.
type Cell struct {
	Ship ShipType
	Mark Mark
}

func (c Cell) IsResolved() bool {
	return c.Mark != MarkUnknown
}

// Grid is indexed as grid[row][col].
type Grid [GridSize][GridSize]Cell

func IsInGridBound(row, col int) bool {
	return row >= ValidLowerBound && row <= ValidUpperBound &&
		col >= ValidLowerBound && col <= ValidUpperBound
}
