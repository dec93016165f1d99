// Package live mirrors a server-side page into a browser over a websocket and
// dispatches the browser's events back to the page.
package live

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kasuboski/showfinder/pkg/app"
	"github.com/kasuboski/showfinder/pkg/dom"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/metrics"
	"github.com/kasuboski/showfinder/pkg/report"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Inbound event types
const (
	EventSubmit = "submit"
	EventClick  = "click"
)

// Outbound message types
const (
	MessagePatch = "patch"
	MessageError = "error"
)

// Event is sent by the browser
type Event struct {
	Type   string `json:"type"`
	Query  string `json:"query,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// Message is sent to the browser
type Message struct {
	Type     string      `json:"type"`
	Patches  []dom.Patch `json:"patches,omitempty"`
	Pipeline string      `json:"pipeline,omitempty"`
}

// Session is one connected browser page
type Session struct {
	id       string
	conn     *websocket.Conn
	doc      *dom.Document
	page     *app.Page
	reporter report.Reporter
	send     chan Message

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession binds a connection to a page. doc must be the document page renders into.
func NewSession(ctx context.Context, conn *websocket.Conn, doc *dom.Document, page *app.Page, reporter report.Reporter) *Session {
	id := uuid.New().String()
	log := logger.FromCtx(ctx).With(zap.String("session", id))

	s := &Session{
		id:       id,
		conn:     conn,
		doc:      doc,
		page:     page,
		reporter: reporter,
		send:     make(chan Message, sendBuffer),
	}
	s.ctx, s.cancel = context.WithCancel(logger.WithCtx(ctx, log))

	doc.Observe(func(patches []dom.Patch) {
		s.enqueue(Message{Type: MessagePatch, Patches: patches})
	})

	return s
}

func (s *Session) ID() string {
	return s.id
}

// Run serves the session until the connection closes or ctx is done. It blocks.
func (s *Session) Run() {
	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	log := logger.FromCtx(s.ctx)
	log.Debug("session started")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump()
	}()

	s.readLoop()

	s.cancel()
	s.wg.Wait()
	<-writerDone
	s.conn.Close()

	log.Debug("session ended")
}

// Close ends the session
func (s *Session) Close() {
	s.cancel()
	// unblock the read loop
	s.conn.SetReadDeadline(time.Now())
}

func (s *Session) readLoop() {
	log := logger.FromCtx(s.ctx)

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugw("session read failed", zap.Error(err))
			}
			return
		}

		if s.ctx.Err() != nil {
			return
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ev)
		}()
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.Close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		case <-s.ctx.Done():
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Session) enqueue(msg Message) {
	select {
	case s.send <- msg:
	case <-s.ctx.Done():
	}
}

func (s *Session) handle(ev Event) {
	log := logger.FromCtx(s.ctx).With(zap.String("event", ev.Type))

	var err error
	switch ev.Type {
	case EventSubmit:
		err = s.page.Search(s.ctx, ev.Query)
	case EventClick:
		err = s.doc.Dispatch(s.ctx, ev.Handle)
	default:
		log.Debugw("ignoring unknown event", zap.Any("event", ev))
		metrics.LiveEventsTotal.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		return
	}

	if err == nil {
		metrics.LiveEventsTotal.WithLabelValues(ev.Type, metrics.OutcomeSuccess).Inc()
		return
	}
	metrics.LiveEventsTotal.WithLabelValues(ev.Type, metrics.OutcomeError).Inc()

	if errors.Is(err, dom.ErrUnknownHandler) {
		// the element was replaced before its event arrived
		log.Debugw("stale event", zap.Error(err))
		return
	}

	if s.ctx.Err() != nil {
		return
	}

	log.Errorw("event failed", zap.Error(err))
	s.reporter.Report(s.ctx, err)

	msg := Message{Type: MessageError}
	var pipelineErr *app.PipelineError
	if errors.As(err, &pipelineErr) {
		msg.Pipeline = pipelineErr.Pipeline
	}
	s.enqueue(msg)
}
