package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifierWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	n := NewLogNotifier(logger)

	err := n.Notify(context.Background(), "owner@example.com", "Withdrawal confirmation", "A withdrawal of 25.00 was made.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log entry, got %q: %v", buf.String(), err)
	}

	if entry["recipient"] != "owner@example.com" {
		t.Fatalf("expected recipient field, got %v", entry["recipient"])
	}
	if entry["subject"] != "Withdrawal confirmation" {
		t.Fatalf("expected subject field, got %v", entry["subject"])
	}
}
