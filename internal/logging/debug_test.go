package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(debugEnvVar, "")
	assert.False(t, DebugEnabled())

	t.Setenv(debugEnvVar, "1")
	assert.True(t, DebugEnabled())

	t.Setenv(debugEnvVar, "true")
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv(debugEnvVar, "")
	Debugf("hidden %s", "message")
	assert.Empty(t, buf.String())

	t.Setenv(debugEnvVar, "1")
	Debugf("closing interval %d", 12)
	assert.Contains(t, buf.String(), "DEBUG closing interval 12")
}

func TestDebugln(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv(debugEnvVar, "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv(debugEnvVar, "1")
	Debugln("auto-end", "run")
	assert.Contains(t, buf.String(), "DEBUG auto-end run")
}

func TestInfofAndErrorf(t *testing.T) {
	buf := captureOutput(t)

	Infof("auto-end closed %d intervals", 3)
	Errorf("cleanup of %s failed", "users")

	out := buf.String()
	assert.Contains(t, out, "INFO auto-end closed 3 intervals")
	assert.Contains(t, out, "ERROR cleanup of users failed")
}

func TestSetDebug(t *testing.T) {
	t.Setenv(debugEnvVar, "")
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(true)
	assert.True(t, DebugEnabled())

	SetDebug(false)
	assert.False(t, DebugEnabled())
}
