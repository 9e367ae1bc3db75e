package integration

import (
	"context"
	"io"
	"testing"

	"deblend/internal/app"
)

func TestCancelledRunExit130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	argv := []string{
		"--scenes", "1000",
		"--batch-size", "4",
		"--image-size", "32",
	}
	code := app.RunContext(ctx, argv, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
