package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	cerr "github.com/saeidalz13/battleship-hotseat/internal/error"
)

const (
	defaultGracePeriod     time.Duration = time.Minute * 2
	defaultCleanupInterval time.Duration = time.Minute * 20
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session, failedConn *websocket.Conn) error
	WriteToSessionConn(session *Session, msg interface{}) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	FetchCodeFromMsg(payload []byte) (uint8, error)
	ActiveSessions() int64
}

type BattleshipSessionManager struct {
	gracePeriod     time.Duration
	cleanupInterval time.Duration
	sessions        map[string]*Session
	active          *atomic.Int64
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type Option func(*BattleshipSessionManager)

func WithGracePeriod(d time.Duration) Option {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func WithCleanupInterval(d time.Duration) Option {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

func NewBattleshipSessionManager(opts ...Option) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		gracePeriod:     defaultGracePeriod,
		cleanupInterval: defaultCleanupInterval,
		active:          atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	bsm.active.Inc()
	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotExist(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	if _, prs := bsm.sessions[sessionId]; prs {
		delete(bsm.sessions, sessionId)
		bsm.active.Dec()
	}
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	session.reconnect(conn)
	log.Printf("session reconnected: %s\n", sessionId)
	return nil
}

func (bsm *BattleshipSessionManager) ActiveSessions() int64 {
	return bsm.active.Load()
}

// To ensure that there is no dangling connections, every session is
// pinged on each tick and sessions without a frame or pong for two
// cleanup intervals are considered stale and removed. A game has no time
// limit: an open browser tab answers the pings however long the players
// think.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	assumedClosedConns := 10
	staleAfter := bsm.cleanupInterval * 2
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)
		toPing := make([]*Session, 0, len(bsm.sessions))
		for id, session := range bsm.sessions {
			if time.Since(session.LastActivity()) > staleAfter {
				toDelete = append(toDelete, id)
				continue
			}
			toPing = append(toPing, session)
		}

		for _, id := range toDelete {
			if conn := bsm.sessions[id].Conn(); conn != nil {
				_ = conn.Close()
			}
			delete(bsm.sessions, id)
			bsm.active.Dec()
			log.Printf("stale session removed: %s", id)
		}
		bsm.mu.Unlock()

		// A failed ping is left to the read loop of the session
		for _, session := range toPing {
			_ = session.ping()
		}
	}
}

// This function takes care of abnormal closures, e.g. a reloaded browser
// tab. The session waits for a reconnection with its id for the grace
// period before giving up.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(session *Session, failedConn *websocket.Conn) error {
	currentConn, reconnected := session.reconnectionState()
	if currentConn != failedConn {
		// Already reconnected while the error was being handled
		return nil
	}

	log.Printf("starting grace period for session: %s\n", session.id)
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Printf("grace period over, session terminated: %s\n", session.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + session.id)

	case <-reconnected:
		log.Printf("player reconnected, session: %s\n", session.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}) error {
	failedConn := session.Conn()
	err := session.writeToConnWithRetry(msg)
	if err == nil {
		session.touch()
		return nil
	}

	if current := session.Conn(); current != nil && current != failedConn {
		if err = session.writeToConnWithRetry(msg); err == nil {
			session.touch()
		}
		return err
	}

	connErr, ok := err.(ConnErr)
	if !ok {
		return err
	}

	switch connErr.Code() {
	case ConnLoopAbnormalClosureRetry:
		if err := bsm.HandleAbnormalClosureSession(session, failedConn); err != nil {
			return err
		}
		// The message is lost with the old connection; the UI asks for
		// the boards again after reconnecting.
		return nil

	default:
		return connErr
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		conn := session.Conn()
		if conn == nil {
			return -1, nil, NewConnErr(ConnLoopBreak).AddDesc("session has no connection")
		}

		messageType, payload, err := conn.ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		// The old connection was closed by a reconnection
		if session.Conn() != conn {
			retries = 0
			continue
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session, conn); err != nil {
				return -1, nil, err
			}
			retries = 0

		default:
			return -1, nil, NewConnErr(ConnLoopBreak).AddDesc("breaking readLoop").WithCause(err)
		}
	}
}

// FetchCodeFromMsg extracts the signal code of an incoming frame.
func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
