package export

import (
	"context"
	"errors"
	"testing"

	"cover-photo/render"
)

type fakeCapturer struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeCapturer) Capture(_ context.Context, _ render.Tree, _ Format) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"png": PNG, "PNG": PNG, "jpeg": JPEG, "jpg": JPEG, "webp": WebP}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("svg"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(JPEG); got != "cover-photo.jpeg" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestExportSuccess(t *testing.T) {
	fc := &fakeCapturer{data: []byte("img")}
	f, err := NewExporter(fc).Export(context.Background(), render.Tree{}, PNG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if f.Name != "cover-photo.png" || f.ContentType != "image/png" || string(f.Data) != "img" {
		t.Fatalf("unexpected file %+v", f)
	}
}

func TestExportUnsupportedNotDowngraded(t *testing.T) {
	fc := &fakeCapturer{err: ErrUnsupportedFormat}
	_, err := NewExporter(fc).Export(context.Background(), render.Tree{}, WebP)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if errors.Is(err, ErrCapture) {
		t.Fatal("unsupported format must not be reported as a capture failure")
	}
}

func TestExportCaptureFailureWrapped(t *testing.T) {
	fc := &fakeCapturer{err: errors.New("tainted image")}
	_, err := NewExporter(fc).Export(context.Background(), render.Tree{}, PNG)
	if !errors.Is(err, ErrCapture) {
		t.Fatalf("expected ErrCapture, got %v", err)
	}
}

func TestExportUnknownFormatSkipsCapture(t *testing.T) {
	fc := &fakeCapturer{data: []byte("x")}
	if _, err := NewExporter(fc).Export(context.Background(), render.Tree{}, "gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if fc.calls != 0 {
		t.Fatalf("capturer called %d times for an unknown format", fc.calls)
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker
	if s, _ := tr.Status(); s != StatusIdle {
		t.Fatalf("expected idle, got %s", s)
	}
	tr.Begin()
	if s, _ := tr.Status(); s != StatusPending {
		t.Fatalf("expected pending, got %s", s)
	}
	tr.Finish(errors.New("boom"))
	if s, msg := tr.Status(); s != StatusError || msg != "boom" {
		t.Fatalf("expected error/boom, got %s/%s", s, msg)
	}
	tr.Begin()
	tr.Finish(nil)
	if s, msg := tr.Status(); s != StatusSuccess || msg != "" {
		t.Fatalf("expected success, got %s/%s", s, msg)
	}
}

func TestTrackerOverlappingExports(t *testing.T) {
	var tr Tracker
	tr.Begin()
	tr.Begin()
	tr.Finish(nil)
	if s, _ := tr.Status(); s != StatusPending {
		t.Fatalf("expected pending while an export runs, got %s", s)
	}
	tr.Finish(errors.New("boom"))
	if s, msg := tr.Status(); s != StatusError || msg != "boom" {
		t.Fatalf("expected error/boom, got %s/%s", s, msg)
	}

	tr.Begin()
	if s, msg := tr.Status(); s != StatusPending || msg != "" {
		t.Fatalf("expected pending without a stale error, got %s/%s", s, msg)
	}
	tr.Finish(nil)
	if s, _ := tr.Status(); s != StatusSuccess {
		t.Fatalf("expected success, got %s", s)
	}
}
