package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"cover-photo/assets"
	"cover-photo/compose"
	"cover-photo/drag"
	"cover-photo/export"
	"cover-photo/render"
)

// Config returns a copy of the current configuration.
func (s *Session) Config() compose.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Customized reports whether the user has edited the configuration. Once
// true it stays true and viewport resizes no longer replace the config.
func (s *Session) Customized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customized
}

func (s *Session) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// Mutate replaces the configuration with the result of fn. fn works on a
// copy; when it fails the session is left untouched.
func (s *Session) Mutate(fn func(compose.Config) (compose.Config, error)) (compose.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.cfg.Clone())
	if err != nil {
		return compose.Config{}, err
	}
	s.commit(next)
	return next.Clone(), nil
}

// commit swaps in next and marks the session customized. Callers hold s.mu.
func (s *Session) commit(next compose.Config) {
	s.cfg = next
	s.customized = true
	s.lastActive = s.now()
	s.notify(Event{Type: EventConfig, Config: next.Clone()})
}

// Patch applies a field update. An empty patch changes nothing and does not
// count as a user edit.
func (s *Session) Patch(p compose.Patch) (compose.Config, error) {
	if p.Empty() {
		return s.Config(), nil
	}
	return s.Mutate(func(c compose.Config) (compose.Config, error) {
		return c.Apply(p)
	})
}

// Resize records a new viewport width and, while the session is not
// customized, replaces the configuration with the matching preset. A resize
// that arrives mid-drag is deferred until the drag ends. It reports whether
// the configuration was replaced.
func (s *Session) Resize(width int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.lastActive = s.now()
	if s.customized {
		return false
	}
	if s.engine.State() == drag.Dragging {
		s.pending = true
		return false
	}
	return s.reselect()
}

// reselect loads the preset for the current width. Callers hold s.mu.
func (s *Session) reselect() bool {
	s.pending = false
	if s.customized {
		return false
	}
	s.cfg = s.presets.Select(s.width)
	s.notify(Event{Type: EventConfig, Config: s.cfg.Clone()})
	return true
}

// Mount records the on-screen rectangle of the preview container.
func (s *Session) Mount(r drag.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = r
	s.mounted = true
}

// Unmount forgets the container. Pointer moves are dropped until the next
// Mount; an active drag stays active.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = drag.Rect{}
	s.mounted = false
}

func (s *Session) measure() (drag.Rect, bool) {
	return s.rect, s.mounted
}

// moved is the drag engine's position callback. It runs with s.mu held.
func (s *Session) moved(target string, pos compose.Position) {
	next, err := s.cfg.MoveElement(target, pos)
	if err != nil {
		log.Printf("session %s: drop move of %q: %v", s.ID, target, err)
		s.endDrag()
		return
	}
	s.cfg = next
	s.customized = true
	s.lastActive = s.now()
	s.notify(Event{Type: EventPosition, Target: target, Position: pos})
}

// PointerDown starts dragging the title, the subtitle or an overlay image.
func (s *Session) PointerDown(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.HasElement(target) {
		return fmt.Errorf("element %q: %w", target, compose.ErrUnknownElement)
	}
	s.engine.PointerDown(target)
	s.lastActive = s.now()
	return nil
}

// PointerMove feeds client coordinates to the drag engine. It returns the
// element and its new position, or ok=false if the event was dropped.
func (s *Session) PointerMove(clientX, clientY float64) (target string, pos compose.Position, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target = s.engine.Target()
	pos, ok = s.engine.PointerMove(clientX, clientY)
	if !ok || s.engine.State() != drag.Dragging {
		return "", compose.Position{}, false
	}
	return target, pos, true
}

func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endDrag()
}

func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.PointerLeave()
	if s.pending {
		s.reselect()
	}
}

// endDrag returns the engine to idle and applies a deferred resize. Callers
// hold s.mu.
func (s *Session) endDrag() {
	s.engine.PointerUp()
	if s.pending {
		s.reselect()
	}
}

// Upload decodes an image and appends it as a new overlay with default size
// and position. Ids are {millis}-{filename}; millis never repeats within a
// session so two uploads of the same file get distinct ids.
func (s *Session) Upload(filename string, r io.Reader) (compose.OverlayImage, error) {
	img, err := assets.Decode(r)
	if err != nil {
		return compose.OverlayImage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stamp := s.now()
	if !s.lastStamp.IsZero() && stamp.UnixMilli() <= s.lastStamp.UnixMilli() {
		stamp = time.UnixMilli(s.lastStamp.UnixMilli() + 1)
	}
	s.lastStamp = stamp

	id := compose.NewImageID(stamp, filename)
	url := s.assets.Put(id, img)
	overlay := compose.NewOverlayImage(id, url)
	next, err := s.cfg.AddImage(overlay)
	if err != nil {
		s.assets.Delete(url)
		return compose.OverlayImage{}, err
	}
	s.commit(next)
	return overlay, nil
}

// RemoveImage drops an overlay and, unless the background still uses it,
// its stored upload.
func (s *Session) RemoveImage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var url string
	for _, img := range s.cfg.Images {
		if img.ID == id {
			url = img.URL
		}
	}
	next, err := s.cfg.RemoveImage(id)
	if err != nil {
		return err
	}
	if s.engine.Target() == id {
		s.endDrag()
	}
	s.commit(next)
	if next.BackgroundImage == nil || *next.BackgroundImage != url {
		s.assets.Delete(url)
	}
	return nil
}

// ResizeImage sets an overlay's box size, clamped to the editor's slider
// range.
func (s *Session) ResizeImage(id string, size int) (compose.Config, error) {
	return s.Mutate(func(c compose.Config) (compose.Config, error) {
		return c.ResizeImage(id, compose.ClampImageSize(size))
	})
}

// Render produces the visual tree of the current configuration.
func (s *Session) Render() render.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Render(s.cfg, s.canvas)
}

// Export rasterizes the current configuration. Editing is not blocked while
// the capture runs; the result reflects the configuration at call time.
func (s *Session) Export(ctx context.Context, format export.Format) (export.File, error) {
	tree := s.Render()
	s.exports.Begin()
	f, err := s.exporter.Export(ctx, tree, format)
	s.exports.Finish(err)
	if err != nil {
		log.Printf("session %s: export %s: %v", s.ID, format, err)
	}
	return f, err
}

// SubmitFeedback validates and sends free-text feedback.
func (s *Session) SubmitFeedback(ctx context.Context, text string) error {
	err := s.feedback.Submit(ctx, text)
	if err != nil {
		log.Printf("session %s: feedback: %v", s.ID, err)
	}
	return err
}
