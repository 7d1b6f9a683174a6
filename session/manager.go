package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cover-photo/assets"
	"cover-photo/drag"
	"cover-photo/export"
	"cover-photo/feedback"
	"cover-photo/preset"
	"cover-photo/raster"
	"cover-photo/render"
)

var ErrNotFound = errors.New("session not found")
var ErrInvalidWidth = errors.New("viewport width must not be negative")

// Options configure the sessions a Manager creates. Zero fields get
// defaults: the built-in presets, the default canvas, time.Now, a gg
// rasterizer and a log-only feedback sender.
type Options struct {
	Presets  Presets
	Canvas   render.Canvas
	Now      func() time.Time
	Capturer func(res assets.Resolver) export.Capturer
	Feedback feedback.Sender
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

func NewManager(presets Presets) *Manager {
	return NewManagerWithOptions(Options{Presets: presets})
}

// NewManagerWithOptions creates a Manager with injected collaborators. Tests
// use it to supply a fake capturer, sender or clock.
func NewManagerWithOptions(opts Options) *Manager {
	if opts.Presets == nil {
		opts.Presets = preset.Default()
	}
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = render.DefaultCanvas
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Capturer == nil {
		opts.Capturer = func(res assets.Resolver) export.Capturer {
			return raster.New(res, raster.Options{})
		}
	}
	if opts.Feedback == nil {
		opts.Feedback = feedback.LogSender{}
	}
	return &Manager{sessions: make(map[string]*Session), opts: opts}
}

// Create starts a session whose configuration is the preset for width.
func (m *Manager) Create(width int) (*Session, error) {
	if width < 0 {
		return nil, ErrInvalidWidth
	}
	now := m.opts.Now()
	id := uuid.New().String()
	store := assets.NewStore(AssetPrefix(id))

	s := &Session{
		ID:         id,
		CreatedAt:  now,
		presets:    m.opts.Presets,
		canvas:     m.opts.Canvas,
		now:        m.opts.Now,
		assets:     store,
		exporter:   export.NewExporter(m.opts.Capturer(store)),
		feedback:   feedback.NewSubmitter(m.opts.Feedback),
		lastActive: now,
		width:      width,
		cfg:        m.opts.Presets.Select(width),
		done:       make(chan struct{}),
	}
	s.engine = drag.New(s.measure, s.moved)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

// List returns the sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Kill discards a session. Its configuration and uploads are not kept
// anywhere.
func (m *Manager) Kill(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.close()
	delete(m.sessions, id)
	return nil
}

// Reselect re-runs preset selection on every session, after the preset table
// has been replaced. Customized sessions are left alone. It returns how many
// sessions were updated.
func (m *Manager) Reselect() int {
	n := 0
	for _, s := range m.List() {
		if s.Resize(s.Width()) {
			n++
		}
	}
	return n
}

// Canvas is the composition box every session renders into.
func (m *Manager) Canvas() render.Canvas {
	return m.opts.Canvas
}
