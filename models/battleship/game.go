package battleship

import (
	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

type GameState uint8

const (
	GameStateAwaitingPlayerOneSetup GameState = iota
	GameStateAwaitingPlayerTwoSetup
	GameStatePlayerOneTurn
	GameStatePlayerTwoTurn
	GameStateGameOver
)

func (s GameState) String() string {
	switch s {
	case GameStateAwaitingPlayerOneSetup:
		return "AwaitingPlayerOneSetup"
	case GameStateAwaitingPlayerTwoSetup:
		return "AwaitingPlayerTwoSetup"
	case GameStatePlayerOneTurn:
		return "PlayerOneTurn"
	case GameStatePlayerTwoTurn:
		return "PlayerTwoTurn"
	case GameStateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

func (s GameState) IsTurn() bool {
	return s == GameStatePlayerOneTurn || s == GameStatePlayerTwoTurn
}

type Player struct {
	Name  string
	Slot  PlayerSlot
	Ships []*Ship
	Board *Board
}

func newPlayer(slot PlayerSlot) *Player {
	return &Player{
		Slot:  slot,
		Ships: make([]*Ship, 0, len(FleetTypes)),
	}
}

// GameResult scores are taken from each player's own board.
type GameResult struct {
	Winner      PlayerSlot
	WinnerName  string
	WinnerScore int
	LoserName   string
	LoserScore  int
}

// Game is one hot-seat match from setup to game over. It is not safe for
// concurrent use; the players take strict turns through a single caller.
type Game struct {
	uuid        string
	state       GameState
	players     [2]*Player
	awaitingAck bool
	lastOutcome Outcome
	result      *GameResult
}

func NewGame(gameUuid string) *Game {
	return &Game{
		uuid:    gameUuid,
		state:   GameStateAwaitingPlayerOneSetup,
		players: [2]*Player{newPlayer(PlayerOne), newPlayer(PlayerTwo)},
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) IsOver() bool {
	return g.state == GameStateGameOver
}

func (g *Game) FetchPlayer(slot PlayerSlot) *Player {
	return g.players[slot]
}

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() (*Player, error) {
	switch g.state {
	case GameStatePlayerOneTurn:
		return g.players[PlayerOne], nil
	case GameStatePlayerTwoTurn:
		return g.players[PlayerTwo], nil
	case GameStateGameOver:
		return nil, cerr.ErrGameAlreadyOver()
	default:
		return nil, cerr.ErrGameStateInvalid("take a turn", g.state.String())
	}
}

func (g *Game) IsAwaitingAcknowledge() bool {
	return g.awaitingAck
}

func (g *Game) LastOutcome() Outcome {
	return g.lastOutcome
}

// Setup registers the name and fleet of the player whose setup is
// pending. A failed attempt leaves the game unchanged so the same player
// can try again.
func (g *Game) Setup(name, placement string) error {
	var slot PlayerSlot
	switch g.state {
	case GameStateAwaitingPlayerOneSetup:
		slot = PlayerOne
	case GameStateAwaitingPlayerTwoSetup:
		slot = PlayerTwo
	default:
		return cerr.ErrGameStateInvalid("set up a player", g.state.String())
	}

	player := g.players[slot]
	if err := Validate(name, placement, &player.Ships); err != nil {
		return err
	}
	player.Name = name

	if slot == PlayerOne {
		g.state = GameStateAwaitingPlayerTwoSetup
		return nil
	}

	var boards [2]*Board
	for i, p := range g.players {
		board, err := NewBoard(p.Ships, p.Slot)
		if err != nil {
			player.Name = ""
			player.Ships = player.Ships[:0]
			return err
		}
		boards[i] = board
	}
	for i, p := range g.players {
		p.Board = boards[i]
	}

	// Player one always moves first
	g.state = GameStatePlayerOneTurn
	g.checkGameOver()
	return nil
}

// Fire shoots the active player's shot at the opponent's board.
// OutcomeDoubleFire keeps the turn with the same player; any other outcome
// must be acknowledged before the turn passes.
func (g *Game) Fire(row, col int) (Outcome, error) {
	attacker, err := g.ActivePlayer()
	if err != nil {
		return OutcomeDoubleFire, err
	}
	if g.awaitingAck {
		return OutcomeDoubleFire, cerr.ErrFireNotAcknowledged()
	}

	defender := g.players[attacker.Slot.Other()]
	outcome, err := defender.Board.Fire(row, col)
	if err != nil {
		return outcome, err
	}

	if outcome != OutcomeDoubleFire {
		g.awaitingAck = true
		g.lastOutcome = outcome
	}
	return outcome, nil
}

// Acknowledge passes the turn after the active player has seen the result
// of their shot, then checks whether the game is over.
func (g *Game) Acknowledge() error {
	attacker, err := g.ActivePlayer()
	if err != nil {
		return err
	}
	if !g.awaitingAck {
		return cerr.ErrGameStateInvalid("acknowledge without a shot", g.state.String())
	}

	g.awaitingAck = false
	if attacker.Slot == PlayerOne {
		g.state = GameStatePlayerTwoTurn
	} else {
		g.state = GameStatePlayerOneTurn
	}

	g.checkGameOver()
	return nil
}

// The player whose opponent's board is all sunk wins. Player one's board
// is checked first.
func (g *Game) checkGameOver() {
	if !g.state.IsTurn() {
		return
	}

	if g.players[PlayerOne].Board.AllShipsSunk() {
		g.finish(PlayerTwo)
		return
	}
	if g.players[PlayerTwo].Board.AllShipsSunk() {
		g.finish(PlayerOne)
	}
}

func (g *Game) finish(winnerSlot PlayerSlot) {
	winner := g.players[winnerSlot]
	loser := g.players[winnerSlot.Other()]

	g.result = &GameResult{
		Winner:      winnerSlot,
		WinnerName:  winner.Name,
		WinnerScore: winner.Board.Score(),
		LoserName:   loser.Name,
		LoserScore:  loser.Board.Score(),
	}
	g.state = GameStateGameOver
}

func (g *Game) Result() (GameResult, error) {
	if g.result == nil {
		return GameResult{}, cerr.ErrGameStateInvalid("read the result", g.state.String())
	}
	return *g.result, nil
}
