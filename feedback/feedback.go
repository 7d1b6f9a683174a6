// Package feedback delivers free-text user feedback to a remote endpoint.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// MinLength is the shortest feedback accepted, in characters.
const MinLength = 5

var (
	ErrTooShort = fmt.Errorf("feedback must be at least %d characters long", MinLength)
	ErrSend     = errors.New("failed to send feedback")
	ErrInFlight = errors.New("feedback submission already in progress")
)

// Validate rejects text shorter than MinLength.
func Validate(text string) error {
	if utf8.RuneCountInString(text) < MinLength {
		return ErrTooShort
	}
	return nil
}

// Sender performs the actual delivery.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// HTTPSender posts the feedback as a text/plain body. Any non-2xx response
// counts as a failure.
type HTTPSender struct {
	URL    string
	Client *http.Client
}

func NewHTTPSender(url string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSender) Send(ctx context.Context, text string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %s", ErrSend, resp.Status)
	}
	return nil
}

// LogSender writes feedback to the process log. Used when no endpoint is
// configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, text string) error {
	log.Printf("feedback: %q", text)
	return nil
}

// Status of the most recent submission.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Submitter validates feedback and hands it to a Sender, allowing one
// submission at a time. Failures are reported, never retried.
type Submitter struct {
	sender Sender

	mu     sync.Mutex
	status Status
	errMsg string
}

func NewSubmitter(sender Sender) *Submitter {
	return &Submitter{sender: sender, status: StatusIdle}
}

// Submit sends text once. Text that fails validation never reaches the
// Sender and leaves the status untouched.
func (s *Submitter) Submit(ctx context.Context, text string) error {
	if err := Validate(text); err != nil {
		return err
	}

	s.mu.Lock()
	if s.status == StatusSending {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.status, s.errMsg = StatusSending, ""
	s.mu.Unlock()

	err := s.sender.Send(ctx, text)
	if err != nil && !errors.Is(err, ErrSend) {
		err = fmt.Errorf("%w: %w", ErrSend, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status, s.errMsg = StatusError, err.Error()
		return err
	}
	s.status = StatusSuccess
	return nil
}

// Status reports the state of the last submission and, after a failure,
// its message.
func (s *Submitter) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.errMsg
}
