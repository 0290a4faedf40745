package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"skirmish/internal/field"
	"skirmish/internal/match"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// GET /ws/events
//
// The first message is a "Snapshot" event carrying the whole field; every
// later message is a field event as it happens.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	hello, events, cancel := s.join()
	defer cancel()
	s.log.Info("spectator connected", "remote", r.RemoteAddr, "spectators", s.hub.Len())

	if err := s.write(conn, hello); err != nil {
		return
	}

	go s.readPump(conn, cancel)
	s.writePump(conn, events)
	s.log.Info("spectator disconnected", "remote", r.RemoteAddr)
}

// join takes the snapshot and subscribes under the same read lock, so the
// feed starts with the first event after the snapshot.
func (s *Server) join() (field.Event, <-chan field.Event, func()) {
	var (
		hello  field.Event
		events <-chan field.Event
		cancel func()
	)
	_ = s.session.View(func(m *match.Match) error {
		snap := m.Field.Snapshot()
		hello = field.Event{Turn: snap.Turn, Type: "Snapshot", Payload: map[string]any{
			"state": m.Turns.State().String(),
			"field": snap,
		}}
		events, cancel = s.hub.Subscribe(256)
		return nil
	})
	return hello, events, cancel
}

// readPump discards client messages and cancels the subscription once the
// peer goes away.
func (s *Server) readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("spectator read failed", "err", err)
			}
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, events <-chan field.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			if err := s.write(conn, ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, ev field.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		s.log.Debug("spectator write failed", "err", err)
		return err
	}
	return nil
}
