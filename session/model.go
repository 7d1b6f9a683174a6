package session

import (
	"sync"
	"time"

	"cover-photo/assets"
	"cover-photo/compose"
	"cover-photo/drag"
	"cover-photo/export"
	"cover-photo/feedback"
	"cover-photo/render"
)

// Presets chooses the starting configuration for a viewport width.
// Both preset.Table and preset.Manager satisfy it.
type Presets interface {
	Select(width int) compose.Config
}

type EventType string

const (
	EventPosition EventType = "position"
	EventConfig   EventType = "config"
)

// Event is pushed to the connected client whenever the session changes.
// Position events carry Target and Position; config events carry Config.
type Event struct {
	Type     EventType
	Target   string
	Position compose.Position
	Config   compose.Config
}

// Session is one editing session: the configuration it owns, the drag
// state of its preview, and the status of its export and feedback calls.
type Session struct {
	ID        string
	CreatedAt time.Time

	presets  Presets
	canvas   render.Canvas
	now      func() time.Time
	assets   *assets.Store
	exporter *export.Exporter
	exports  export.Tracker
	feedback *feedback.Submitter

	mu         sync.Mutex
	lastActive time.Time
	cfg        compose.Config
	customized bool
	width      int
	pending    bool // a resize arrived mid-drag
	rect       drag.Rect
	mounted    bool
	engine     *drag.Engine
	lastStamp  time.Time

	outMu     sync.Mutex
	outChan   chan Event
	kickChan  chan struct{}
	connected bool
	done      chan struct{}
	closeOnce sync.Once
}

// StatusInfo is the state of an asynchronous call as reported to clients.
type StatusInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Info is a point-in-time view of a session.
type Info struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	LastActive time.Time      `json:"last_active"`
	Connected  bool           `json:"connected"`
	Width      int            `json:"width"`
	Customized bool           `json:"customized"`
	Dragging   string         `json:"dragging,omitempty"`
	Config     compose.Config `json:"config"`
	Export     StatusInfo     `json:"export"`
	Feedback   StatusInfo     `json:"feedback"`
}

func (s *Session) Info() Info {
	s.mu.Lock()
	info := Info{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
		Width:      s.width,
		Customized: s.customized,
		Dragging:   s.engine.Target(),
		Config:     s.cfg.Clone(),
	}
	s.mu.Unlock()

	st, msg := s.exports.Status()
	info.Export = StatusInfo{Status: string(st), Error: msg}
	fst, fmsg := s.feedback.Status()
	info.Feedback = StatusInfo{Status: string(fst), Error: fmsg}

	s.outMu.Lock()
	info.Connected = s.connected
	s.outMu.Unlock()
	return info
}

// AssetPrefix is the URL prefix under which a session's uploads are served.
func AssetPrefix(id string) string {
	return "/api/sessions/" + id + "/assets/"
}

// Assets exposes the session's upload store.
func (s *Session) Assets() *assets.Store {
	return s.assets
}

// SetClient registers a channel to receive session events. If a previous
// client is connected it is kicked: its kick channel is closed so the
// WebSocket handler can detect the displacement and close that connection.
func (s *Session) SetClient(ch chan Event) <-chan struct{} {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.outChan = ch
	s.connected = true
	return kick
}

// ClearClient is called when a connection ends. It only updates session
// state if ch is still the current owner, and always closes ch so the pump
// goroutine exits.
func (s *Session) ClearClient(ch chan Event) {
	s.outMu.Lock()
	if s.outChan == ch {
		s.outChan = nil
		s.kickChan = nil
		s.connected = false
	}
	s.outMu.Unlock()
	close(ch)
}

// Done is closed when the session is discarded.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// notify hands ev to the connected client without blocking. A slow client
// misses events; the next config or position event supersedes them.
func (s *Session) notify(ev Event) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.outChan == nil {
		return
	}
	select {
	case s.outChan <- ev:
	default:
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
