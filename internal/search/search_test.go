package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func brackets(s string) string { return "[" + s + "]" }

func TestMarkIgnoresCase(t *testing.T) {
	res := Mark("Fees for BCA\nno hit here\nbca hostel fees", "bca", brackets)

	require.Equal(t, 2, res.Count)
	require.Equal(t, []int{0, 2}, res.Lines)
	require.Equal(t, "Fees for [BCA]\nno hit here\n[bca] hostel fees", res.Text)
}

func TestMarkKeepsEscapeSequences(t *testing.T) {
	res := Mark("see \x1b[1mfees\x1b[0m now", "fees", brackets)

	require.Equal(t, 1, res.Count)
	require.Equal(t, "see \x1b[1m[fees]\x1b[0m now", res.Text)
}

func TestMarkDoesNotSpanEscapes(t *testing.T) {
	res := Mark("fe\x1b[1mes\x1b[0m", "fees", brackets)
	require.Zero(t, res.Count)
}

func TestMarkBlankQuery(t *testing.T) {
	res := Mark("anything", "  ", brackets)
	require.Equal(t, Matches{Text: "anything"}, res)
}

func TestNextWraps(t *testing.T) {
	m := Matches{Lines: []int{3, 9, 12}}

	require.Equal(t, 1, m.Next(0, 1))
	require.Equal(t, 0, m.Next(2, 1))
	require.Equal(t, 2, m.Next(0, -1))
	require.Equal(t, -1, Matches{}.Next(0, 1))
}

func TestNextFromNoSelection(t *testing.T) {
	m := Matches{Lines: []int{2, 5, 9}}

	require.Equal(t, 0, m.Next(-1, 1))
	require.Equal(t, 2, m.Next(-1, -1))
}
