package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-kit/kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Config{Level: "info"})
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "hidden")
	level.Info(logger).Log("msg", "shown", "satellite", "25544")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "satellite=25544")
	assert.Contains(t, out, "caller=")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Config{Level: "debug", Format: "json"})
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "propagated", "tsince", 90.0)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "propagated", line["msg"])
	assert.Equal(t, 90.0, line["tsince"])
	assert.Contains(t, line, "ts")
}

func TestNewErrors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Config{Format: "xml"})
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, Config{Level: "verbose"})
	assert.Error(t, err)
}
