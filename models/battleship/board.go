package battleship

import (
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

const (
	InitialScore    = 2 * FleetCells
	ScorePerHitCell = 2
)

// Symbols used by board views
const (
	ViewWater = "."
	ViewHit   = "X"
	ViewMiss  = "O"
)

type PlayerSlot uint8

const (
	PlayerOne PlayerSlot = iota
	PlayerTwo
)

func (p PlayerSlot) Other() PlayerSlot {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p PlayerSlot) String() string {
	if p == PlayerOne {
		return "Player One"
	}
	return "Player Two"
}

// Board is one player's own waters. It is only mutated by Fire, which the
// opponent calls during their turn.
type Board struct {
	slot  PlayerSlot
	grid  Grid
	ships []*Ship
	hits  map[ShipType]int
}

// NewBoard places a validated fleet (carrier, battleship, submarine) on an
// empty grid.
func NewBoard(ships []*Ship, slot PlayerSlot) (*Board, error) {
	if len(ships) != len(FleetTypes) {
		return nil, cerr.ErrFleetShipCount(len(ships))
	}

	for i, ship := range ships {
		if ship == nil || ship.Type() != FleetTypes[i] {
			return nil, cerr.ErrFleetShipType(i, FleetTypes[i].String())
		}
		for _, spot := range ship.spots {
			if !IsInGridBound(spot.Row, spot.Col) {
				return nil, cerr.ErrXorYOutOfGridBound(spot.Row, spot.Col)
			}
		}
	}

	board := &Board{
		slot:  slot,
		ships: ships,
		hits:  make(map[ShipType]int, len(FleetTypes)),
	}

	for _, ship := range ships {
		shipType := ship.Type()
		for _, spot := range ship.spots {
			board.grid[spot.Row][spot.Col].Ship = shipType
		}
	}
	return board, nil
}

func (b *Board) Slot() PlayerSlot {
	return b.slot
}

// Ships returns the fleet in carrier, battleship, submarine order. The
// slice is a copy; the grid was built from the board's own fleet.
func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

func (b *Board) Cell(row, col int) (Cell, error) {
	if !IsInGridBound(row, col) {
		return Cell{}, cerr.ErrXorYOutOfGridBound(row, col)
	}
	return b.grid[row][col], nil
}

func (b *Board) HitCount(t ShipType) int {
	return b.hits[t]
}

// Fire resolves a shot at (row, col). A cell that was already hit or
// missed yields OutcomeDoubleFire and the board is left as is.
func (b *Board) Fire(row, col int) (Outcome, error) {
	if !IsInGridBound(row, col) {
		return OutcomeDoubleFire, cerr.ErrXorYOutOfGridBound(row, col)
	}

	cell := &b.grid[row][col]
	if cell.IsResolved() {
		return OutcomeDoubleFire, nil
	}

	if cell.Ship == ShipTypeNone {
		cell.Mark = MarkMiss
		return OutcomeMiss, nil
	}

	cell.Mark = MarkHit
	b.hits[cell.Ship]++
	if b.hits[cell.Ship] == cell.Ship.Length() {
		return sunkOutcome(cell.Ship), nil
	}
	return OutcomeHit, nil
}

func (b *Board) IsSunk(t ShipType) bool {
	return b.hits[t] == t.Length()
}

func (b *Board) AllShipsSunk() bool {
	for _, t := range FleetTypes {
		if !b.IsSunk(t) {
			return false
		}
	}
	return true
}

// Score is the damage taken by the owner of this board: it starts at 24
// and loses 2 for every hit cell.
func (b *Board) Score() int {
	score := InitialScore
	for row := range b.grid {
		for col := range b.grid[row] {
			if b.grid[row][col].Mark == MarkHit {
				score -= ScorePerHitCell
			}
		}
	}
	return score
}

// FriendlyView is what the owner sees: ships, hits and misses.
func (b *Board) FriendlyView() [][]string {
	return b.view(true)
}

// EnemyView hides the ships and only shows resolved shots.
func (b *Board) EnemyView() [][]string {
	return b.view(false)
}

func (b *Board) view(showShips bool) [][]string {
	view := make([][]string, GridSize)
	for row := range b.grid {
		view[row] = make([]string, GridSize)
		for col, cell := range b.grid[row] {
			switch {
			case cell.Mark == MarkHit:
				view[row][col] = ViewHit
			case cell.Mark == MarkMiss:
				view[row][col] = ViewMiss
			case showShips && cell.Ship != ShipTypeNone:
				view[row][col] = cell.Ship.Tag()
			default:
				view[row][col] = ViewWater
			}
		}
	}
	return view
}
