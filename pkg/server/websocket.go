package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 32 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Demo runtime; the reverse proxy enforces origins in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventFrame is the wire form of a client event.
type eventFrame struct {
	Target string          `json:"target"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// decodeEvent turns a wire frame into a bus event with a typed payload.
// Unknown names pass through with raw data attached so custom listeners
// can still see them.
func decodeEvent(frame eventFrame) (events.Event, error) {
	ev := events.Event{Target: frame.Target, Name: frame.Name}
	if frame.Name == "" {
		return ev, fmt.Errorf("event frame missing name")
	}

	decode := func(v any) error {
		if len(frame.Data) == 0 {
			return fmt.Errorf("event %q missing payload", frame.Name)
		}
		return json.Unmarshal(frame.Data, v)
	}

	switch frame.Name {
	case events.Scroll:
		var p events.ScrollEvent
		if err := decode(&p); err != nil {
			return ev, err
		}
		ev.Data = p
	case events.Resize:
		var p events.ResizeEvent
		if err := decode(&p); err != nil {
			return ev, err
		}
		ev.Data = p
	case events.PointerEnter, events.PointerLeave:
		if len(frame.Data) > 0 {
			var p events.PointerEvent
			if err := json.Unmarshal(frame.Data, &p); err != nil {
				return ev, err
			}
			ev.Data = p
		}
	case events.Input:
		var p events.InputEvent
		if err := decode(&p); err != nil {
			return ev, err
		}
		ev.Data = p
	case events.Click:
		// No payload.
	default:
		if len(frame.Data) > 0 {
			ev.Data = frame.Data
		}
	}

	return ev, nil
}

// readPump decodes client frames into session events until the connection
// drops or the session closes.
func (srv *Server) readPump(conn *websocket.Conn, session *Session) {
	conn.SetReadLimit(maxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame eventFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				srv.metrics.WSErrors.WithLabelValues("read").Inc()
				srv.log.Warn("websocket read failed", "session", session.ID(), "err", err)
			}
			return
		}

		ev, err := decodeEvent(frame)
		if err != nil {
			srv.metrics.WSErrors.WithLabelValues("decode").Inc()
			srv.log.Warn("bad event frame", "session", session.ID(), "err", err)
			continue
		}
		session.HandleEvent(ev)
	}
}

// writePump pushes session patches to the client and keeps the
// connection alive with pings.
func (srv *Server) writePump(conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case patch, ok := <-session.Patches():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(patch); err != nil {
				srv.metrics.WSErrors.WithLabelValues("write").Inc()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-session.StdContext().Done():
			return
		}
	}
}
