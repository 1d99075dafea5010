package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	mb "github.com/saeidalz13/battleship-hotseat/models/battleship"
	mc "github.com/saeidalz13/battleship-hotseat/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	URLQuerySessionIDKeyword string = "sessionID"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
	stage          string
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
}

type Option func(*RequestProcessor)

// WithStage sets the deployment stage. In prod only the listed origins
// may open a websocket.
func WithStage(stage string, allowedOrigins ...string) Option {
	return func(rp *RequestProcessor) {
		rp.stage = stage
		for _, origin := range allowedOrigins {
			if origin = strings.TrimSpace(origin); origin != "" {
				rp.allowedOrigins[origin] = true
			}
		}
	}
}

// WithQuerier enables the analytics counters.
func WithQuerier(q sqlc.Querier) Option {
	return func(rp *RequestProcessor) {
		rp.analytics = sqlc.NewAnalyticsManager(q)
	}
}

func WithDbManager(dbManager sqlc.DbManager) Option {
	return func(rp *RequestProcessor) {
		rp.analytics = dbManager.Analytics
	}
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	opts ...Option,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		stage:          StageDev,
		allowedOrigins: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(rp)
	}

	rp.upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     rp.checkOrigin,
	}
	rp.ipnet = findServerIpNet()
	return rp
}

func (rp *RequestProcessor) checkOrigin(r *http.Request) bool {
	if rp.stage != StageProd {
		return true
	}
	return rp.allowedOrigins[r.Header.Get("Origin")]
}

// The first up, non-loopback IPv4 address identifies this server in the
// analytics table. Loopback is used when there is none.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			log.Println(err)
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return loopback
}

// Expose this method to use it in testing
func (rp *RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp *RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

// recordAnalytics never fails the game; errors are only logged.
func (rp *RequestProcessor) recordAnalytics(increment func(context.Context, pqtype.Inet) error) {
	if !rp.analytics.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := increment(ctx, rp.serverInet()); err != nil {
		log.Println("analytics:", err)
	}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	if sessionIdQuery == "" {
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
		return
	}

	// The loop of the original connection keeps serving the session
	if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
		log.Println(err)
		msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
		msg.AddErr(err, "session expired, please start a new game")
		_ = conn.WriteJSON(msg)
		_ = conn.Close()
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame *mb.Game
		sessionId   = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Printf("session terminated: %s\n", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)

		switch code {

		// A new game replaces whatever game the session had
		case mc.CodeCreateGame:
			if sessionGame != nil {
				rp.gameManager.TerminateGame(sessionGame.Uuid())
			}

			game, respMsg := req.HandleCreateGame(rp.gameManager)
			sessionGame = game
			session.SetGameUuid(game.Uuid())
			log.Printf("game created: %s\tsession: %s\n", game.Uuid(), sessionId)
			rp.recordAnalytics(rp.analytics.IncrementGamesCreatedCount)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		// After the second successful setup the game starts with
		// player one's turn.
		case mc.CodeSetupPlayer:
			respMsg := req.HandleSetupPlayer(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}
			if respMsg.Failed() || !sessionGame.State().IsTurn() {
				continue sessionLoop
			}

			startMsg := req.HandleTurnStart(sessionGame, mc.CodeStartGame)
			if err := rp.sessionManager.WriteToSessionConn(session, startMsg); err != nil {
				break sessionLoop
			}

		case mc.CodeFire:
			respMsg := req.HandleFire(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		// Either the turn passes or, when the last shot sank the whole
		// fleet, the game ends.
		case mc.CodeAcknowledge:
			respMsg := req.HandleAcknowledge(sessionGame)
			if respMsg.Failed() {
				if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if sessionGame.IsOver() {
				endMsg := req.HandleEndGame(sessionGame)
				log.Printf("game over: %s\twinner: %s\n", sessionGame.Uuid(), endMsg.Payload.WinnerName)
				rp.recordAnalytics(rp.analytics.IncrementGamesFinishedCount)

				if err := rp.sessionManager.WriteToSessionConn(session, endMsg); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		case mc.CodeBoards:
			respMsg := req.HandleBoards(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}
