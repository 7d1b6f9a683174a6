package export

import "sync"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Tracker records the outcome of the latest export. It never blocks editing.
// Overlapping exports keep the status pending until the last one finishes;
// the reported outcome is that of the export that finished last.
type Tracker struct {
	mu       sync.Mutex
	inFlight int
	result   Status
	lastErr  string
}

func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight++
}

func (t *Tracker) Finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight > 0 {
		t.inFlight--
	}
	if err != nil {
		t.result = StatusError
		t.lastErr = err.Error()
		return
	}
	t.result = StatusSuccess
	t.lastErr = ""
}

// Status returns the current status and the last error message, if any.
func (t *Tracker) Status() (Status, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.inFlight > 0:
		return StatusPending, ""
	case t.result == "":
		return StatusIdle, ""
	}
	return t.result, t.lastErr
}
