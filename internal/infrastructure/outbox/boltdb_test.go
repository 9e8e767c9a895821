package outbox

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, to := range []string{"first@example.com", "second@example.com", "third@example.com"} {
		err := store.Enqueue(Message{
			To:        to,
			Subject:   "Password Reset For TaskDeck",
			HTMLBody:  "<p>reset</p>",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("enqueueing message %d: %v", i, err)
		}
	}

	messages, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("reading batch: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages; want 3", len(messages))
	}

	// Drain order follows enqueue order.
	wantOrder := []string{"first@example.com", "second@example.com", "third@example.com"}
	for i, msg := range messages {
		if msg.To != wantOrder[i] {
			t.Errorf("message %d = %q; want %q", i, msg.To, wantOrder[i])
		}
		if msg.ID == "" {
			t.Errorf("message %d has no generated ID", i)
		}
	}
}

func TestGetBatch_RespectsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := store.Enqueue(Message{To: "user@example.com", Subject: "s"}); err != nil {
			t.Fatalf("enqueueing: %v", err)
		}
	}

	messages, err := store.GetBatch(2)
	if err != nil {
		t.Fatalf("reading batch: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("got %d messages; want 2", len(messages))
	}
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Message{To: "user@example.com", Subject: "s"}); err != nil {
		t.Fatalf("enqueueing: %v", err)
	}

	messages, err := store.GetBatch(1)
	if err != nil {
		t.Fatalf("reading batch: %v", err)
	}
	if err := store.Remove(messages[0]); err != nil {
		t.Fatalf("removing: %v", err)
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("sizing: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d after remove; want 0", size)
	}
}

func TestRequeue_MovesToBack(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-time.Minute)
	if err := store.Enqueue(Message{To: "retry@example.com", Subject: "s", Timestamp: old}); err != nil {
		t.Fatalf("enqueueing: %v", err)
	}
	if err := store.Enqueue(Message{To: "fresh@example.com", Subject: "s"}); err != nil {
		t.Fatalf("enqueueing: %v", err)
	}

	messages, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("reading batch: %v", err)
	}
	if messages[0].To != "retry@example.com" {
		t.Fatalf("head = %q; want the older message first", messages[0].To)
	}

	head := messages[0]
	if err := store.Remove(head); err != nil {
		t.Fatalf("removing: %v", err)
	}
	head.Retries++
	if err := store.Requeue(head); err != nil {
		t.Fatalf("requeueing: %v", err)
	}

	messages, err = store.GetBatch(10)
	if err != nil {
		t.Fatalf("re-reading batch: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages; want 2", len(messages))
	}
	if messages[len(messages)-1].To != "retry@example.com" {
		t.Errorf("tail = %q; requeued message should move to the back", messages[len(messages)-1].To)
	}
	if messages[len(messages)-1].Retries != 1 {
		t.Errorf("retries = %d; want 1", messages[len(messages)-1].Retries)
	}
}

func TestSize(t *testing.T) {
	store := openTestStore(t)

	size, err := store.Size()
	if err != nil {
		t.Fatalf("sizing empty store: %v", err)
	}
	if size != 0 {
		t.Errorf("empty size = %d; want 0", size)
	}

	for i := 0; i < 3; i++ {
		if err := store.Enqueue(Message{To: "user@example.com", Subject: "s"}); err != nil {
			t.Fatalf("enqueueing: %v", err)
		}
	}

	size, err = store.Size()
	if err != nil {
		t.Fatalf("sizing: %v", err)
	}
	if size != 3 {
		t.Errorf("size = %d; want 3", size)
	}
}
