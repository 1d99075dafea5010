package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Starts a fresh hot-seat game on this session
	CodeCreateGame

	// Name and placement of the player whose setup is pending
	CodeSetupPlayer

	// Both players are set up; player one moves first
	CodeStartGame

	CodeFire

	// The active player has seen the fire result; the turn passes
	CodeAcknowledge
	CodeTurnStart

	// Friendly and enemy views for the active player
	CodeBoards

	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}
