package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrFireFailed  = "fire operation failed"
	ConstErrSetupFailed = "player setup failed"
)

var (
	ErrInvalidName           = errors.New("invalid player name")
	ErrInvalidPlacement      = errors.New("invalid ship placement")
	ErrInvalidInterval       = errors.New("invalid ship interval")
	ErrInvalidFleet          = errors.New("invalid fleet")
	ErrOutOfGridBound        = errors.New("position out of game grid bound")
	ErrGameOver              = errors.New("game is over")
	ErrWrongGameState        = errors.New("operation not allowed in current game state")
	ErrResultNotAcknowledged = errors.New("previous fire result not acknowledged")
	ErrGameNotExists         = errors.New("game does not exist")
	ErrSessionNotFound       = errors.New("session not found")
	ErrNoGameInSession       = errors.New("no game created for this session")
)

func ErrNameInvalid(name string) error {
	return fmt.Errorf("%w: only letters and spaces, max 35 characters\tname: %q", ErrInvalidName, name)
}

func ErrPlacementEmpty() error {
	return fmt.Errorf("%w: placement is empty", ErrInvalidPlacement)
}

func ErrPlacementFormat(placement string) error {
	return fmt.Errorf("%w: must be of the form A(<cell>-<cell>);B(<cell>-<cell>);S(<cell>-<cell>);\tgot: %q", ErrInvalidPlacement, placement)
}

func ErrShipDiagonal(tag string) error {
	return fmt.Errorf("%w: ship %s is neither horizontal nor vertical", ErrInvalidPlacement, tag)
}

func ErrShipLength(tag string, expected, got int) error {
	return fmt.Errorf("%w: ship %s must have length %d\tgot: %d", ErrInvalidPlacement, tag, expected, got)
}

func ErrShipsOverlap(tagA, tagB string) error {
	return fmt.Errorf("%w: ships %s and %s overlap", ErrInvalidPlacement, tagA, tagB)
}

func ErrIntervalMalformed(interval string) error {
	return fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
}

func ErrFleetShipCount(got int) error {
	return fmt.Errorf("%w: expected 3 ships\tgot: %d", ErrInvalidFleet, got)
}

func ErrFleetShipType(index int, ship string) error {
	return fmt.Errorf("%w: unexpected ship at position %d: %s", ErrInvalidFleet, index, ship)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfGridBound, row, col)
}

func ErrGameAlreadyOver() error {
	return fmt.Errorf("%w: no further shots accepted", ErrGameOver)
}

func ErrGameStateInvalid(op, state string) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrWrongGameState, op, state)
}

func ErrFireNotAcknowledged() error {
	return fmt.Errorf("%w: acknowledge the last shot before firing again", ErrResultNotAcknowledged)
}

func ErrGameNotExist(gameUuid string) error {
	return fmt.Errorf("%w\tuuid: %s", ErrGameNotExists, gameUuid)
}

func ErrSessionNotExist(sessionID string) error {
	return fmt.Errorf("%w\tid: %s", ErrSessionNotFound, sessionID)
}

func ErrSessionWithoutGame() error {
	return ErrNoGameInSession
}
