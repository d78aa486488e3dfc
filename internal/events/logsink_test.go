package events

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startSink(t *testing.T, path string) (*LogSink, chan Event, context.CancelFunc) {
	t.Helper()
	sink := NewLogSink(path)
	ch := make(chan Event, 10)
	ctx, cancel := context.WithCancel(context.Background())
	if err := sink.Start(ctx, ch); err != nil {
		cancel()
		t.Fatalf("Start failed: %v", err)
	}
	return sink, ch, cancel
}

func TestLogSinkCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "events.jsonl")

	sink, ch, cancel := startSink(t, path)
	close(ch)
	cancel()
	_ = sink.Stop()

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
	if sink.Path() != path {
		t.Errorf("Path() = %q, want %q", sink.Path(), path)
	}
}

func TestLogSinkWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink, ch, cancel := startSink(t, path)
	defer cancel()

	ch <- &SessionStartEvent{
		BaseEvent: NewEngineEvent(EventSessionStart),
		SessionID: "abc-123",
		Minutes:   24,
		Seconds:   59,
	}
	ch <- slotText("minutes", "24")
	ch <- &SlotClassEvent{
		BaseEvent: NewSurfaceEvent(EventSlotClass),
		Slot:      "done",
		Class:     "show_message",
	}
	close(ch)

	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if sink.Written() != 3 {
		t.Errorf("Written() = %d, want 3", sink.Written())
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer func() { _ = file.Close() }()

	var types []EventType
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ev, err := ParseLine(scanner.Bytes())
		if err != nil {
			t.Fatalf("line %q: %v", scanner.Text(), err)
		}
		types = append(types, ev.Type())
	}

	want := []EventType{EventSessionStart, EventSlotText, EventSlotClass}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("line %d type = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestLogSinkRotatesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")

	previous := `{"type":"slot.text","timestamp":"2024-01-01T00:00:00Z","source":"surface"}` + "\n"
	if err := os.WriteFile(path, []byte(previous), 0644); err != nil {
		t.Fatalf("write previous log: %v", err)
	}

	sink, ch, cancel := startSink(t, path)
	ch <- slotText("seconds", "59")
	close(ch)
	cancel()
	_ = sink.Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "2024-01-01") {
		t.Error("previous run should have been moved aside")
	}

	baks, _ := filepath.Glob(path + ".*.bak")
	if len(baks) != 1 {
		t.Errorf("expected 1 backup file, got %v", baks)
	}
}

func TestLogSinkStopsOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink, _, cancel := startSink(t, path)

	cancel()

	done := make(chan struct{})
	go func() {
		_ = sink.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}
