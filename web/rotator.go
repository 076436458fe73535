// ABOUTME: Websocket endpoint driving an article's image rotator from the server
// ABOUTME: Each connection owns one Rotator; closing the socket unmounts it

package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nepalvoices-web/api/middleware"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/rotator"
	"nepalvoices-web/pkg/featureflags"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose
// origin host matches the request host
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, host, ok := strings.Cut(origin, "://")
	return ok && strings.EqualFold(host, r.Host)
}

// rotatorMessage is pushed to the client on every transition
type rotatorMessage struct {
	State  string `json:"state"`
	Index  int    `json:"index"`
	Count  int    `json:"count"`
	Image  string `json:"image,omitempty"`
	Loaded bool   `json:"loaded"`
}

func toMessage(snap rotator.Snapshot) rotatorMessage {
	return rotatorMessage{
		State:  snap.State.String(),
		Index:  snap.Index,
		Count:  snap.Count,
		Image:  snap.Image,
		Loaded: snap.Loaded,
	}
}

// rotatorSession coalesces rotator transitions for a single writer. Only the
// newest snapshot by Seq is kept, so a slow client never blocks the rotator
// and a late callback never rewinds the client.
type rotatorSession struct {
	mu      sync.Mutex
	latest  rotator.Snapshot
	pending chan struct{}
}

func newRotatorSession() *rotatorSession {
	return &rotatorSession{pending: make(chan struct{}, 1)}
}

func (rs *rotatorSession) publish(snap rotator.Snapshot) {
	rs.mu.Lock()
	if snap.Seq < rs.latest.Seq {
		rs.mu.Unlock()
		return
	}
	rs.latest = snap
	rs.mu.Unlock()

	select {
	case rs.pending <- struct{}{}:
	default:
	}
}

func (rs *rotatorSession) snapshot() rotator.Snapshot {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.latest
}

// activeRotatorSessions reports open rotator sockets on this server
func (s *Server) activeRotatorSessions() int64 {
	return s.sessions.Load()
}

func (s *Server) handleRotator(w http.ResponseWriter, r *http.Request) {
	if !s.flags.IsEnabled(r.Context(), featureflags.RotatorSocketEnabled) {
		s.renderError(w, r, http.StatusNotFound)
		return
	}

	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" {
		http.Error(w, "slug is required", http.StatusBadRequest)
		return
	}

	images, err := s.pages.RotatorImages(r.Context(), slug)
	if err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		s.logError("Failed to load rotator images", err, r)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		return
	}

	s.sessions.Add(1)
	middleware.RotatorSessions.Inc()
	defer func() {
		middleware.RotatorSessions.Dec()
		s.sessions.Add(-1)
	}()

	session := newRotatorSession()
	rot := rotator.New(rotator.Options{
		Interval: s.rotatorInterval,
		OnChange: session.publish,
	})

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeRotator(conn, session, done)
	}()

	_ = rot.Mount(images)
	s.readRotator(conn, rot, slug)

	rot.Unmount()
	close(done)
	<-writerDone
	conn.Close()
}

// readRotator applies client commands until the connection closes
func (s *Server) readRotator(conn *websocket.Conn, rot *rotator.Rotator, slug string) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		cmd := strings.TrimSpace(string(data))
		switch {
		case cmd == "loaded":
			rot.Loaded()
		case cmd == "failed":
			rot.ImageFailed()
		case strings.HasPrefix(cmd, "select:"):
			k, convErr := strconv.Atoi(strings.TrimPrefix(cmd, "select:"))
			if convErr != nil {
				s.debug("Ignoring malformed rotator select", slug, cmd)
				continue
			}
			if err := rot.Select(k); err != nil {
				s.debug("Rejected rotator select", slug, err.Error())
			}
		default:
			s.debug("Ignoring unknown rotator command", slug, cmd)
		}
	}
}

// writeRotator is the connection's only writer
func (s *Server) writeRotator(conn *websocket.Conn, session *rotatorSession, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-session.pending:
			payload, err := json.Marshal(toMessage(session.snapshot()))
			if err != nil {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) debug(msg, slug, detail string) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, map[string]interface{}{"slug": slug, "detail": detail})
}
