package feedback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type countingSender struct {
	mu    sync.Mutex
	calls []string
	err   error
	block chan struct{}
}

func (s *countingSender) Send(_ context.Context, text string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	return s.err
}

func (s *countingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		text string
		ok   bool
	}{
		{"", false},
		{"ok", false},
		{"four", false},
		{"fives", true},
		{"great tool", true},
		{"héllo", true},
	}
	for _, tc := range cases {
		err := Validate(tc.text)
		if tc.ok && err != nil {
			t.Errorf("Validate(%q) = %v", tc.text, err)
		}
		if !tc.ok && !errors.Is(err, ErrTooShort) {
			t.Errorf("Validate(%q) = %v, want ErrTooShort", tc.text, err)
		}
	}
}

func TestShortFeedbackNeverSent(t *testing.T) {
	sender := &countingSender{}
	sub := NewSubmitter(sender)

	if err := sub.Submit(context.Background(), "ok"); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
	if sender.count() != 0 {
		t.Fatalf("sender called %d times", sender.count())
	}
	if st, _ := sub.Status(); st != StatusIdle {
		t.Fatalf("status should stay idle, got %s", st)
	}
}

func TestSubmitCallsSenderOnce(t *testing.T) {
	sender := &countingSender{}
	sub := NewSubmitter(sender)

	if err := sub.Submit(context.Background(), "great tool"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sender.count() != 1 || sender.calls[0] != "great tool" {
		t.Fatalf("unexpected calls %v", sender.calls)
	}
	if st, _ := sub.Status(); st != StatusSuccess {
		t.Fatalf("expected success, got %s", st)
	}
}

func TestFailureAllowsResubmission(t *testing.T) {
	sender := &countingSender{err: errors.New("boom")}
	sub := NewSubmitter(sender)

	err := sub.Submit(context.Background(), "great tool")
	if !errors.Is(err, ErrSend) {
		t.Fatalf("expected ErrSend, got %v", err)
	}
	st, msg := sub.Status()
	if st != StatusError || msg == "" {
		t.Fatalf("expected error status with message, got %s %q", st, msg)
	}

	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()
	if err := sub.Submit(context.Background(), "great tool"); err != nil {
		t.Fatalf("resubmission: %v", err)
	}
	if sender.count() != 2 {
		t.Fatalf("expected 2 calls, got %d", sender.count())
	}
}

func TestSubmitRejectsWhileSending(t *testing.T) {
	sender := &countingSender{block: make(chan struct{})}
	sub := NewSubmitter(sender)

	done := make(chan error, 1)
	go func() { done <- sub.Submit(context.Background(), "first try") }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if st, _ := sub.Status(); st == StatusSending {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := sub.Submit(context.Background(), "second try"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	close(sender.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if sender.count() != 1 {
		t.Fatalf("expected a single send, got %d", sender.count())
	}
}

func TestHTTPSender(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody, gotType = string(b), r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewHTTPSender(srv.URL, time.Second)
	if err := s.Send(context.Background(), "great tool"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotBody != "great tool" {
		t.Fatalf("unexpected body %q", gotBody)
	}
	if gotType != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", gotType)
	}
}

func TestHTTPSenderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewHTTPSender(srv.URL, time.Second).Send(context.Background(), "great tool")
	if !errors.Is(err, ErrSend) {
		t.Fatalf("expected ErrSend, got %v", err)
	}
}

func TestHTTPSenderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPSender(url, time.Second).Send(context.Background(), "great tool")
	if !errors.Is(err, ErrSend) {
		t.Fatalf("expected ErrSend, got %v", err)
	}
}
