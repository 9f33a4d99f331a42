package utils

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  hello  ", 10); got != "hello" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
	if got := TruncateForLog("hello world", 5); got != "hello..." {
		t.Fatalf("expected truncation with ellipsis, got %q", got)
	}
	if got := TruncateForLog("hello", 0); got != "" {
		t.Fatalf("expected empty output for a zero limit, got %q", got)
	}
	if got := TruncateForLog("こんにちは世界", 5); got != "こんにちは..." {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestWaitForCompletes(t *testing.T) {
	if err := WaitFor(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error for a zero duration: %v", err)
	}
}

func TestWaitForCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Minute); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
