package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogNotifierSeverities(t *testing.T) {
	var buf bytes.Buffer
	n := SlogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	ctx := context.Background()

	n.Notify(ctx, "reward unlocked", SeveritySuccess)
	n.Notify(ctx, "not enough points", SeverityWarning)

	out := buf.String()
	if !strings.Contains(out, "reward unlocked") || !strings.Contains(out, "level=WARN") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAutoConfirmer(t *testing.T) {
	ok, err := AutoConfirmer(true).Confirm(context.Background(), "Redeem", "Spend 500 points?")
	if err != nil || !ok {
		t.Fatalf("got %v %v", ok, err)
	}
	ok, err = AutoConfirmer(false).Confirm(context.Background(), "Redeem", "Spend 500 points?")
	if err != nil || ok {
		t.Fatalf("cancelled confirmation must report false")
	}
}
