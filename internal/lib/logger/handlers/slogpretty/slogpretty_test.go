package slogpretty

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_Handle(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "test.op"))

	log.Info("fetch failed", slog.Int("page", 3))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "fetch failed")
	assert.Contains(t, out, `"op": "test.op"`)
	assert.Contains(t, out, `"page": 3`)
}
