package battleship_test

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
)

const (
	playerOneName = "Alice"
	playerTwoName = "Bob"
	// Both players use the same layout in these tests
	playerTwoPlacement = validPlacement
)

func newStartedGame(t *testing.T) *mb.Game {
	t.Helper()

	game := mb.NewGame("test01")
	if err := game.Setup(playerOneName, validPlacement); err != nil {
		t.Fatal(err)
	}
	if err := game.Setup(playerTwoName, playerTwoPlacement); err != nil {
		t.Fatal(err)
	}
	return game
}

func fireAndAcknowledge(t *testing.T, game *mb.Game, row, col int) mb.Outcome {
	t.Helper()

	outcome, err := game.Fire(row, col)
	if err != nil {
		t.Fatal(err)
	}
	if err := game.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	return outcome
}

func TestGameSetup(t *testing.T) {
	game := mb.NewGame("test01")
	if game.State() != mb.GameStateAwaitingPlayerOneSetup {
		t.Fatalf("expected state: %s\tgot: %s", mb.GameStateAwaitingPlayerOneSetup, game.State())
	}

	// Invalid input keeps the state and never stores ships
	err := game.Setup("Al1ce", "A(A1-A5);B(A2-D2);S(H3-J3);")
	if !errors.Is(err, cerr.ErrInvalidName) || !errors.Is(err, cerr.ErrInvalidPlacement) {
		t.Fatalf("expected both name and placement errors\tgot: %v", err)
	}
	if game.State() != mb.GameStateAwaitingPlayerOneSetup {
		t.Fatalf("failed setup must not advance\tgot: %s", game.State())
	}
	if n := len(game.FetchPlayer(mb.PlayerOne).Ships); n != 0 {
		t.Fatalf("failed setup must not store ships\tgot: %d", n)
	}

	if _, err := game.Fire(0, 0); !errors.Is(err, cerr.ErrWrongGameState) {
		t.Fatalf("expected wrong state error before setup\tgot: %v", err)
	}

	if err := game.Setup(playerOneName, validPlacement); err != nil {
		t.Fatal(err)
	}
	if game.State() != mb.GameStateAwaitingPlayerTwoSetup {
		t.Fatalf("expected state: %s\tgot: %s", mb.GameStateAwaitingPlayerTwoSetup, game.State())
	}

	if err := game.Setup(playerTwoName, ""); !errors.Is(err, cerr.ErrInvalidPlacement) {
		t.Fatalf("expected invalid placement\tgot: %v", err)
	}
	if game.State() != mb.GameStateAwaitingPlayerTwoSetup {
		t.Fatalf("failed setup must not advance\tgot: %s", game.State())
	}

	if err := game.Setup(playerTwoName, playerTwoPlacement); err != nil {
		t.Fatal(err)
	}
	if game.State() != mb.GameStatePlayerOneTurn {
		t.Fatalf("expected state: %s\tgot: %s", mb.GameStatePlayerOneTurn, game.State())
	}

	for _, slot := range []mb.PlayerSlot{mb.PlayerOne, mb.PlayerTwo} {
		player := game.FetchPlayer(slot)
		if len(player.Ships) != 3 {
			t.Fatalf("%s: expected 3 ships\tgot: %d", slot, len(player.Ships))
		}
		if player.Board == nil || player.Board.Slot() != slot {
			t.Fatalf("%s: board not created", slot)
		}
	}

	if err := game.Setup("Carol", validPlacement); !errors.Is(err, cerr.ErrWrongGameState) {
		t.Fatalf("expected wrong state error after setup\tgot: %v", err)
	}
}

func TestGameTurns(t *testing.T) {
	game := newStartedGame(t)

	if err := game.Acknowledge(); !errors.Is(err, cerr.ErrWrongGameState) {
		t.Fatalf("acknowledge without a shot must fail\tgot: %v", err)
	}

	outcome, err := game.Fire(9, 9)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != mb.OutcomeMiss {
		t.Fatalf("expected: %s\tgot: %s", mb.OutcomeMiss, outcome)
	}
	if !game.IsAwaitingAcknowledge() || game.LastOutcome() != mb.OutcomeMiss {
		t.Fatal("miss must wait for acknowledgement")
	}

	if _, err := game.Fire(8, 8); !errors.Is(err, cerr.ErrResultNotAcknowledged) {
		t.Fatalf("expected not acknowledged error\tgot: %v", err)
	}
	if cell, _ := game.FetchPlayer(mb.PlayerTwo).Board.Cell(8, 8); cell.Mark != mb.MarkUnknown {
		t.Fatal("rejected shot must not touch the board")
	}

	if err := game.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if game.State() != mb.GameStatePlayerTwoTurn {
		t.Fatalf("expected state: %s\tgot: %s", mb.GameStatePlayerTwoTurn, game.State())
	}

	active, err := game.ActivePlayer()
	if err != nil {
		t.Fatal(err)
	}
	if active.Name != playerTwoName {
		t.Fatalf("expected active player: %s\tgot: %s", playerTwoName, active.Name)
	}

	// Player two hits player one's carrier
	if outcome := fireAndAcknowledge(t, game, 0, 0); outcome != mb.OutcomeHit {
		t.Fatalf("expected: %s\tgot: %s", mb.OutcomeHit, outcome)
	}

	// Player one repeats the earlier shot; the turn stays with player one
	outcome, err = game.Fire(9, 9)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != mb.OutcomeDoubleFire {
		t.Fatalf("expected: %s\tgot: %s", mb.OutcomeDoubleFire, outcome)
	}
	if game.IsAwaitingAcknowledge() {
		t.Fatal("double fire must not wait for acknowledgement")
	}
	if game.State() != mb.GameStatePlayerOneTurn {
		t.Fatalf("double fire must keep the turn\tgot: %s", game.State())
	}

	if _, err := game.Fire(10, 0); !errors.Is(err, cerr.ErrOutOfGridBound) {
		t.Fatalf("expected out of bound error\tgot: %v", err)
	}
	if game.IsAwaitingAcknowledge() || game.State() != mb.GameStatePlayerOneTurn {
		t.Fatal("out of bound shot must not change the game")
	}

	if _, err := game.Result(); !errors.Is(err, cerr.ErrWrongGameState) {
		t.Fatalf("result must not be available before game over\tgot: %v", err)
	}
}

func TestGamePlayerOneWins(t *testing.T) {
	game := newStartedGame(t)

	targets := make([]mb.Spot, 0, mb.FleetCells)
	for _, ship := range game.FetchPlayer(mb.PlayerTwo).Board.Ships() {
		targets = append(targets, ship.Spots()...)
	}

	// Player two lands a single hit on the carrier, then only misses on the last row
	playerTwoShots := [][2]int{{0, 0}}
	for col := 0; col < mb.GridSize; col++ {
		playerTwoShots = append(playerTwoShots, [2]int{9, col})
	}

	for i, target := range targets {
		if game.IsOver() {
			t.Fatalf("game over too early after %d shots", i)
		}
		fireAndAcknowledge(t, game, target.Row, target.Col)

		if i == len(targets)-1 {
			break
		}
		shot := playerTwoShots[i]
		fireAndAcknowledge(t, game, shot[0], shot[1])
	}

	if game.State() != mb.GameStateGameOver {
		t.Fatalf("expected state: %s\tgot: %s", mb.GameStateGameOver, game.State())
	}

	result, err := game.Result()
	if err != nil {
		t.Fatal(err)
	}

	expected := mb.GameResult{
		Winner:      mb.PlayerOne,
		WinnerName:  playerOneName,
		WinnerScore: 22,
		LoserName:   playerTwoName,
		LoserScore:  0,
	}
	if result != expected {
		t.Fatalf("expected result: %+v\tgot: %+v", expected, result)
	}

	if _, err := game.Fire(5, 5); !errors.Is(err, cerr.ErrGameOver) {
		t.Fatalf("expected game over error\tgot: %v", err)
	}
	if err := game.Acknowledge(); !errors.Is(err, cerr.ErrGameOver) {
		t.Fatalf("expected game over error\tgot: %v", err)
	}
}

func TestGamePlayerTwoWins(t *testing.T) {
	game := newStartedGame(t)

	targets := make([]mb.Spot, 0, mb.FleetCells)
	for _, ship := range game.FetchPlayer(mb.PlayerOne).Board.Ships() {
		targets = append(targets, ship.Spots()...)
	}

	// Player one only misses, on rows 9 and 8
	for i, target := range targets {
		fireAndAcknowledge(t, game, 9-i/mb.GridSize, i%mb.GridSize)
		fireAndAcknowledge(t, game, target.Row, target.Col)
	}

	result, err := game.Result()
	if err != nil {
		t.Fatal(err)
	}
	if result.Winner != mb.PlayerTwo || result.WinnerName != playerTwoName || result.LoserName != playerOneName {
		t.Fatalf("expected player two to win\tgot: %+v", result)
	}
	if result.WinnerScore != 24 || result.LoserScore != 0 {
		t.Fatalf("expected scores 24 and 0\tgot: %d and %d", result.WinnerScore, result.LoserScore)
	}
}
