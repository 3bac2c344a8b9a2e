package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 4, GetDisplayWidth("计时"))
	assert.Equal(t, 0, GetDisplayWidth(""))
}

func TestPadString(t *testing.T) {
	assert.Equal(t, "ab   ", PadString("ab", 5, true))
	assert.Equal(t, "   ab", PadString("ab", 5, false))
	assert.Equal(t, "计时 ", PadString("计时", 5, true))
	assert.Equal(t, "toolong", PadString("toolong", 3, true))
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "short", TruncateToWidth("short", 10))
	assert.Equal(t, "abcd…", TruncateToWidth("abcdefgh", 5))
	assert.Equal(t, "", TruncateToWidth("abc", 0))
}

func TestTerminalWidthNotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, DefaultTerminalWidth, TerminalWidth(f.Fd()))
	assert.Equal(t, 0, WriterWidth(f))
}

func TestWriterWidthNonFile(t *testing.T) {
	var sb strings.Builder
	assert.Equal(t, 0, WriterWidth(&sb))
}
