// Package remote serves editor sessions to remote UI hosts over WebSocket.
// Every connection gets its own session; a single hub goroutine applies all
// inbound messages in arrival order, so sessions are never touched
// concurrently.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VergilAI/brand-book-sub003/internal/engine"
	"github.com/VergilAI/brand-book-sub003/internal/typeid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSessionID = errors.New("invalid session id")
)

type editorSession struct {
	id     string
	client *Client
	engine *engine.Engine
	seq    int64
}

type documentQuery struct {
	sessionID string
	reply     chan string
}

type Hub struct {
	opts       engine.Options
	sessions   map[string]*editorSession // clientID -> session
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	queries    chan documentQuery
	done       chan struct{}
}

func NewHub(opts engine.Options) *Hub {
	return &Hub{
		opts:       opts,
		sessions:   make(map[string]*editorSession),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inbound, 256),
		queries:    make(chan documentQuery),
		done:       make(chan struct{}),
	}
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.inbound:
			h.handleMessage(in.client, in.msg)
		case q := <-h.queries:
			q.reply <- h.documentJSON(q.sessionID)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Document returns the JSON export of a session's document.
func (h *Hub) Document(ctx context.Context, sessionID string) (string, error) {
	if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionID, err)
	}
	q := documentQuery{sessionID: sessionID, reply: make(chan string, 1)}
	select {
	case h.queries <- q:
	case <-h.done:
		return "", ErrSessionNotFound
	case <-ctx.Done():
		return "", ctx.Err()
	}
	doc := <-q.reply
	if doc == "" {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return doc, nil
}

func (h *Hub) documentJSON(sessionID string) string {
	for _, s := range h.sessions {
		if s.id == sessionID {
			return s.engine.GetDocument()
		}
	}
	return ""
}

func (h *Hub) addClient(client *Client) {
	eng := engine.NewEngine(h.opts)
	eng.NewDocument("Untitled")

	s := &editorSession{
		id:     typeid.NewSessionID(),
		client: client,
		engine: eng,
	}
	client.SessionID = s.id
	h.sessions[client.ClientID] = s

	payload, _ := json.Marshal(WelcomePayload{
		SessionID: s.id,
		ClientID:  client.ClientID,
		Document:  json.RawMessage(eng.GetDocument()),
	})
	client.Send(&Message{Type: TypeWelcome, SessionID: s.id, Payload: payload})
	h.sendFrame(s)

	slog.Info("client connected", "client", client.ClientID, "session", s.id)
}

func (h *Hub) removeClient(client *Client) {
	s, ok := h.sessions[client.ClientID]
	if !ok {
		return
	}
	delete(h.sessions, client.ClientID)
	close(client.send)

	slog.Info("client disconnected", "client", client.ClientID, "session", s.id)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	s, ok := h.sessions[sender.ClientID]
	if !ok {
		return
	}

	switch msg.Type {
	case TypeInput:
		if err := s.engine.HandleJSON(msg.Payload); err != nil {
			h.sendError(s, err)
			return
		}
	case TypeToolSet:
		var p ToolPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			h.sendError(s, fmt.Errorf("invalid tool payload: %w", err))
			return
		}
		if err := s.engine.SetTool(p.Tool); err != nil {
			h.sendError(s, err)
			return
		}
	case TypeDocLoad:
		if err := h.loadDocument(s, msg.Payload); err != nil {
			h.sendError(s, err)
			return
		}
	case TypeOpSubmit:
		h.handleOpSubmit(s, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		h.sendError(s, fmt.Errorf("unknown message type %q", msg.Type))
		return
	}
	h.sendFrame(s)
}

func (h *Hub) loadDocument(s *editorSession, raw json.RawMessage) error {
	var p DocLoadPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("invalid doc.load payload: %w", err)
	}
	if p.Sample != "" {
		s.engine.LoadSampleDocument(p.Sample)
		return nil
	}
	if len(p.Document) == 0 {
		return errors.New("doc.load needs document or sample")
	}
	return s.engine.LoadDocument(string(p.Document))
}

func (h *Hub) handleOpSubmit(s *editorSession, msg *Message) {
	var p OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(s, fmt.Errorf("invalid op.submit payload: %w", err))
		return
	}
	if p.OperationID == "" {
		p.OperationID = typeid.NewOpID()
	}

	if err := s.engine.ApplyOperation(p.Operation); err != nil {
		slog.Debug("operation rejected", "error", err, "session", s.id, "type", p.Operation.Type)
		nack, _ := json.Marshal(OperationNackPayload{OperationID: p.OperationID, Reason: err.Error()})
		s.client.Send(&Message{Type: TypeOpNack, SessionID: s.id, Payload: nack})
		return
	}

	s.seq++
	ack, _ := json.Marshal(OperationAckPayload{OperationID: p.OperationID, ServerSeq: s.seq})
	s.client.Send(&Message{Type: TypeOpAck, SessionID: s.id, Seq: s.seq, Payload: ack})
}

func (h *Hub) sendFrame(s *editorSession) {
	payload, _ := json.Marshal(FramePayload{
		Commands: json.RawMessage(s.engine.Render()),
		State:    json.RawMessage(s.engine.GetState()),
	})
	s.client.Send(&Message{Type: TypeFrame, SessionID: s.id, Seq: s.seq, Payload: payload})
}

func (h *Hub) sendError(s *editorSession, err error) {
	payload, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	s.client.Send(&Message{Type: TypeError, SessionID: s.id, Payload: payload})
}
