package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "1.2.3")
	assert.Equal(t, len(bannerLines)+3, strings.Count(out, "\n"))
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(0)

	out, err := render("## Recommended\n\n- **Trade license**")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended")
	assert.Contains(t, out, "Trade license")
}

func TestIsInteractive_File(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsInteractive(f))
}
