package connection

type NoPayload bool

// Message is the envelope of every frame exchanged with the browser. A
// failed request still carries the payload when the UI needs it, e.g.
// which setup field was invalid.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// AddErr reports err as the details and message as the text shown to
// the players.
func (m *Message[T]) AddErr(err error, message string) {
	m.AddError(err.Error(), message)
}

func (m Message[T]) Failed() bool {
	return m.Error != nil
}
