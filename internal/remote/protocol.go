package remote

import (
	"encoding/json"

	"github.com/VergilAI/brand-book-sub003/internal/session"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Host → server
	TypeInput    = "input"
	TypeOpSubmit = "op.submit"
	TypeDocLoad  = "doc.load"
	TypeToolSet  = "tool.set"

	// Server → host
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeOpAck   = "op.ack"
	TypeOpNack  = "op.nack"
	TypeError   = "error"
)

// WelcomePayload is sent once after the connection is registered.
type WelcomePayload struct {
	SessionID string          `json:"sessionId"`
	ClientID  string          `json:"clientId"`
	Document  json.RawMessage `json:"document"`
}

// FramePayload carries the draw commands and editor state after a change.
type FramePayload struct {
	Commands json.RawMessage `json:"commands"`
	State    json.RawMessage `json:"state"`
}

// DocLoadPayload replaces the session document. Sample loads the built-in
// sample document under that name instead.
type DocLoadPayload struct {
	Document json.RawMessage `json:"document,omitempty"`
	Sample   string          `json:"sample,omitempty"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

// OperationSubmitPayload is the payload for op.submit messages. An empty
// OperationID is assigned by the server and echoed in the ack or nack.
type OperationSubmitPayload struct {
	OperationID string            `json:"operationId"`
	Operation   session.Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID string `json:"operationId"`
	ServerSeq   int64  `json:"serverSeq"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
