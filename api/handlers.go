package api

import (
	"encoding/json"
	"errors"
	"strings"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandleSetupPlayer(game *mb.Game) mc.Message[mc.RespSetupPlayer]
	HandleTurnStart(game *mb.Game, code uint8) mc.Message[mc.RespTurn]
	HandleFire(game *mb.Game) mc.Message[mc.RespFire]
	HandleAcknowledge(game *mb.Game) mc.Message[mc.RespTurn]
	HandleBoards(game *mb.Game) mc.Message[mc.RespBoards]
	HandleEndGame(game *mb.Game) mc.Message[mc.RespEndGame]
}

// Every incoming valid request will have this structure
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func (r Request) HandleCreateGame(gm mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	game := gm.CreateGame()

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), State: game.State().String()})
	return game, resp
}

// The player being set up is whichever setup the game is waiting for.
// A failed attempt tells the UI which of name and placement to correct.
func (r Request) HandleSetupPlayer(game *mb.Game) mc.Message[mc.RespSetupPlayer] {
	resp := mc.NewMessage[mc.RespSetupPlayer](mc.CodeSetupPlayer)
	if game == nil {
		resp.AddErr(cerr.ErrSessionWithoutGame(), "create a game first")
		return resp
	}

	var req mc.Message[mc.ReqSetupPlayer]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddErr(err, cerr.ConstErrSetupFailed)
		return resp
	}

	slot := mb.PlayerOne
	if game.State() == mb.GameStateAwaitingPlayerTwoSetup {
		slot = mb.PlayerTwo
	}

	err := game.Setup(req.Payload.Name, req.Payload.Placement)
	payload := mc.RespSetupPlayer{
		PlayerSlot: uint8(slot),
		State:      game.State().String(),
	}
	if err == nil {
		resp.AddPayload(payload)
		return resp
	}

	payload.NameInvalid = errors.Is(err, cerr.ErrInvalidName)
	payload.PlacementInvalid = errors.Is(err, cerr.ErrInvalidPlacement) || errors.Is(err, cerr.ErrInvalidInterval) || errors.Is(err, cerr.ErrInvalidFleet)
	resp.AddPayload(payload)

	messages := make([]string, 0, 2)
	if payload.NameInvalid {
		messages = append(messages, mb.MsgInvalidName)
	}
	if payload.PlacementInvalid {
		messages = append(messages, mb.MsgInvalidPlacement)
	}
	if len(messages) == 0 {
		messages = append(messages, cerr.ConstErrSetupFailed)
	}
	resp.AddErr(err, strings.Join(messages, "\n"))
	return resp
}

func (r Request) HandleTurnStart(game *mb.Game, code uint8) mc.Message[mc.RespTurn] {
	resp := mc.NewMessage[mc.RespTurn](code)
	if game == nil {
		resp.AddErr(cerr.ErrSessionWithoutGame(), "")
		return resp
	}

	active, err := game.ActivePlayer()
	if err != nil {
		resp.AddErr(err, "")
		return resp
	}

	resp.AddPayload(mc.RespTurn{
		State:        game.State().String(),
		ActivePlayer: active.Name,
		OpponentName: game.FetchPlayer(active.Slot.Other()).Name,
	})
	return resp
}

func (r Request) HandleFire(game *mb.Game) mc.Message[mc.RespFire] {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)
	if game == nil {
		resp.AddErr(cerr.ErrSessionWithoutGame(), cerr.ConstErrFireFailed)
		return resp
	}

	var req mc.Message[mc.ReqFire]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddErr(err, cerr.ConstErrFireFailed)
		return resp
	}

	row, col := req.Payload.Row, req.Payload.Col
	outcome, err := game.Fire(row, col)
	if err != nil {
		resp.AddErr(err, cerr.ConstErrFireFailed)
		return resp
	}

	resp.AddPayload(mc.RespFire{
		Row:                 row,
		Col:                 col,
		Outcome:             uint8(outcome),
		OutcomeName:         outcome.String(),
		Text:                outcome.Message(),
		AwaitingAcknowledge: game.IsAwaitingAcknowledge(),
	})
	return resp
}

// The response carries the turn that just started; when the game is over
// the caller sends the end game result instead.
func (r Request) HandleAcknowledge(game *mb.Game) mc.Message[mc.RespTurn] {
	if game == nil {
		resp := mc.NewMessage[mc.RespTurn](mc.CodeTurnStart)
		resp.AddErr(cerr.ErrSessionWithoutGame(), "")
		return resp
	}

	if err := game.Acknowledge(); err != nil {
		resp := mc.NewMessage[mc.RespTurn](mc.CodeTurnStart)
		resp.AddErr(err, "")
		return resp
	}

	if game.IsOver() {
		return mc.NewMessage[mc.RespTurn](mc.CodeTurnStart)
	}
	return r.HandleTurnStart(game, mc.CodeTurnStart)
}

// Boards of the active player: their own waters and what they know of
// the opponent's.
func (r Request) HandleBoards(game *mb.Game) mc.Message[mc.RespBoards] {
	resp := mc.NewMessage[mc.RespBoards](mc.CodeBoards)
	if game == nil {
		resp.AddErr(cerr.ErrSessionWithoutGame(), "")
		return resp
	}

	active, err := game.ActivePlayer()
	if err != nil {
		resp.AddErr(err, "")
		return resp
	}

	opponent := game.FetchPlayer(active.Slot.Other())
	resp.AddPayload(mc.RespBoards{
		ActivePlayer: active.Name,
		Friendly:     active.Board.FriendlyView(),
		Enemy:        opponent.Board.EnemyView(),
	})
	return resp
}

func (r Request) HandleEndGame(game *mb.Game) mc.Message[mc.RespEndGame] {
	resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	if game == nil {
		resp.AddErr(cerr.ErrSessionWithoutGame(), "")
		return resp
	}

	result, err := game.Result()
	if err != nil {
		resp.AddErr(err, "")
		return resp
	}

	resp.AddPayload(mc.RespEndGame{
		WinnerName:  result.WinnerName,
		WinnerScore: result.WinnerScore,
		LoserName:   result.LoserName,
		LoserScore:  result.LoserScore,
	})
	return resp
}
