package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"cover-photo/compose"
	"cover-photo/drag"
	"cover-photo/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the JSON frame exchanged on the drag socket.
//
// Client to server: mount{rect}, unmount, down{target}, move{x,y}, up,
// leave, viewport{width}. Server to client: position{target,x,y},
// config{config}, error{error}, closed.
type wsMessage struct {
	Type   string          `json:"type"`
	Target string          `json:"target,omitempty"`
	X      *float64        `json:"x,omitempty"`
	Y      *float64        `json:"y,omitempty"`
	Rect   *drag.Rect      `json:"rect,omitempty"`
	Width  *int            `json:"width,omitempty"`
	Config *compose.Config `json:"config,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func eventMessage(ev session.Event) wsMessage {
	switch ev.Type {
	case session.EventPosition:
		x, y := ev.Position.X, ev.Position.Y
		return wsMessage{Type: "position", Target: ev.Target, X: &x, Y: &y}
	default:
		cfg := ev.Config
		return wsMessage{Type: "config", Config: &cfg}
	}
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	events := make(chan session.Event, 256)
	kick := s.SetClient(events)
	defer s.ClearClient(events)

	// Start from the current configuration.
	cfg := s.Config()
	if err := writeMsg(wsMessage{Type: "config", Config: &cfg}); err != nil {
		return
	}

	// Pump session events to the client. Exits when ClearClient closes events.
	go func() {
		for ev := range events {
			if err := writeMsg(eventMessage(ev)); err != nil {
				return
			}
		}
	}()

	// Close the connection on session end or displacement so ReadJSON below
	// unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// A dropped connection ends the gesture; the session keeps running.
			s.PointerLeave()
			return
		}

		switch msg.Type {
		case "mount":
			if msg.Rect != nil {
				s.Mount(*msg.Rect)
			}
		case "unmount":
			s.Unmount()
		case "down":
			if err := s.PointerDown(msg.Target); err != nil {
				writeMsg(wsMessage{Type: "error", Error: err.Error()}) //nolint:errcheck
			}
		case "move":
			if msg.X != nil && msg.Y != nil {
				s.PointerMove(*msg.X, *msg.Y)
			}
		case "up":
			s.PointerUp()
		case "leave":
			s.PointerLeave()
		case "viewport":
			if msg.Width != nil && *msg.Width >= 0 {
				s.Resize(*msg.Width)
			}
		}
	}
}
