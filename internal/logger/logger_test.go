package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWithWriter(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	Info("dropped")
	DocumentResult("update", "rentals/r1", errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "rentals/r1", entry["path"])
	assert.Equal(t, "boom", entry["error"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Get(), FromContext(context.Background()))

	l := WithRequest("req-1", "admin-1")
	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
