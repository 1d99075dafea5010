package connection

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2

	pingWriteTimeout time.Duration = time.Second * 5
)

type ConnectionHandler interface {
	reconnect(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}) error
	onConnErr(err error) uint8
}

// Session is one browser tab. Both hot-seat players share it.
type Session struct {
	id                     string
	gameUuid               string
	conn                   *websocket.Conn
	reconnectionSignalChan chan struct{}
	lastActivity           time.Time
	mu                     sync.Mutex
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	s := &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		lastActivity:           time.Now(),
	}
	s.watchPongs(conn)
	return s
}

// Pongs count as activity, so an idle but open browser tab keeps its
// session while the players think.
func (s *Session) watchPongs(conn *websocket.Conn) {
	if conn == nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		s.touch()
		return nil
	})
}

// ping asks the browser for a pong. The pong is handled by the read loop
// of the session.
func (s *Session) ping() error {
	conn := s.Conn()
	if conn == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("session has no connection")
	}
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingWriteTimeout))
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) GameUuid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameUuid
}

func (s *Session) SetGameUuid(gameUuid string) {
	s.mu.Lock()
	s.gameUuid = gameUuid
	s.mu.Unlock()
}

// LastActivity is the time of the last frame read from or written to
// the session.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) remoteAddr() string {
	conn := s.Conn()
	if conn == nil {
		return "<nil>"
	}
	return conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Happens when the browser tab is reloaded or the network drops
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	/*
		The client is probably not the game UI. Breaking so the server is
		not flooded with payloads it cannot handle.

		CloseUnsupportedData (1003): binary frames on a text only endpoint.
		CloseInvalidFramePayloadData (1007): text frame that is not UTF-8.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}) error {
	var retries uint8

writeLoop:
	for {
		conn := s.Conn()
		if conn == nil {
			return NewConnErr(ConnLoopBreak).AddDesc("session has no connection")
		}

		err := conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Printf("writing to ws [%s] failed; retrying... (retry no. %d)\n", s.remoteAddr(), retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeLoop
			}
			log.Printf("max retries reached for writing to ws [%s]: %s", s.remoteAddr(), err)
			return NewConnErr(ConnLoopBreak).WithCause(err)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking writeLoop").WithCause(err)
		}
	}
}

// Handles the errors that occur when reading from the ws connection.
// ConnLoopContinue means read again.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.remoteAddr(), retries+1)
			time.Sleep(time.Duration((retries+1)*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.remoteAddr(), err)
		return ConnLoopBreak
	}
}

// reconnect swaps in the new connection and wakes up the loop waiting
// in the grace period.
func (s *Session) reconnect(conn *websocket.Conn) {
	s.watchPongs(conn)

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.conn
	s.conn = conn
	s.lastActivity = time.Now()
	close(s.reconnectionSignalChan)
	s.reconnectionSignalChan = make(chan struct{})

	if old != nil {
		_ = old.Close()
	}
}

// reconnectionState returns the current connection together with the
// channel that is closed on the next reconnection.
func (s *Session) reconnectionState() (*websocket.Conn, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn, s.reconnectionSignalChan
}
