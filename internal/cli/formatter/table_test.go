package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"CODE", "NAME"},
		[][]string{
			{"TEE-RED", "red tee"},
			{"X", "y"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	// Both data rows start the second column at the same offset.
	assert.Equal(t, strings.Index(lines[2], "red tee"), strings.Index(lines[0], "NAME"))
}

func TestRenderTableShortRow(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B", "C"},
		[][]string{{"only"}},
	))
	assert.Contains(t, out, "only")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
