package sender

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleRizzolo/SeaScan/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

func TestEnqueueRunsJob(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	defer d.Close()

	done := make(chan struct{})
	err := d.Enqueue(context.Background(), 1, "send.text", "sendMessage", func() error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestPerChatOrderingPreserved(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 64})

	var mu sync.Mutex
	var order []int
	const jobs = 20
	for i := 0; i < jobs; i++ {
		i := i
		if err := d.Enqueue(context.Background(), 42, "send.text", "", func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	d.Close()

	if len(order) != jobs {
		t.Fatalf("ran %d of %d jobs", len(order), jobs)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("job %d ran at position %d: %v", v, i, order)
		}
	}
}

func TestSameChatSameQueue(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 8})
	defer d.Close()

	q := d.queueFor(42)
	for i := 0; i < 10; i++ {
		if d.queueFor(42) != q {
			t.Fatal("chat 42 must always map to the same queue")
		}
	}
	if d.queueFor(-42) != q {
		t.Fatal("negative (group) ids must shard with their absolute value")
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	d.Close()

	err := d.Enqueue(context.Background(), 1, "send.text", "", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestEnqueueQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	release := make(chan struct{})
	// First job blocks the worker, second fills the buffer.
	_ = d.Enqueue(context.Background(), 1, "send.text", "", func() error {
		<-release
		return nil
	})

	deadline := time.After(2 * time.Second)
	for {
		err := d.Enqueue(context.Background(), 1, "send.text", "", func() error { return nil })
		if errors.Is(err, ErrQueueFull) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("queue never reported full")
		default:
		}
	}
	close(release)
}

func TestErrorCountGrowsOnPermanentFailure(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 4, MaxRetries: 0})

	_ = d.Enqueue(context.Background(), 1, "send.text", "", func() error {
		return errors.New("telegram: bad request (400)")
	})
	d.Close()

	if d.ErrorCount() != 1 {
		t.Fatalf("error count = %d", d.ErrorCount())
	}
}

func TestSanitizeErrorMessageRedactsToken(t *testing.T) {
	err := errors.New("Post \"https://api.telegram.org/bot123456:AAHs-secretToken_x/sendMessage\": timeout")
	msg := sanitizeErrorMessage(err)
	if msg == err.Error() {
		t.Fatal("token was not redacted")
	}
	if want := "bot<redacted>"; !strings.Contains(msg, want) {
		t.Fatalf("sanitized message %q missing %q", msg, want)
	}
}

func TestClassifyError(t *testing.T) {
	if got := classifyError(context.DeadlineExceeded); got != "timeout" {
		t.Fatalf("deadline: %s", got)
	}
	if got := classifyError(errors.New("telegram: internal (500)")); got != "http_5xx" {
		t.Fatalf("5xx: %s", got)
	}
	if got := classifyError(errors.New("telegram: bad request (400)")); got != "http_4xx" {
		t.Fatalf("4xx: %s", got)
	}
	if got := classifyError(errors.New("weird failure")); got != "unknown" {
		t.Fatalf("unknown: %s", got)
	}
}
