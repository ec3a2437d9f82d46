// Package search finds and marks query hits in styled terminal text.
package search

import (
	"regexp"
	"strings"
)

// Matches do not span escape sequences.
var escapeSeq = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

type Matches struct {
	Text  string
	Count int
	// Lines holds the line number of every line with at least one hit.
	Lines []int
}

// Mark wraps each case-insensitive occurrence of query in rendered with mark.
func Mark(rendered, query string, mark func(string) string) Matches {
	query = strings.TrimSpace(query)
	if query == "" {
		return Matches{Text: rendered}
	}
	if mark == nil {
		mark = func(s string) string { return s }
	}

	lines := strings.Split(rendered, "\n")
	res := Matches{}
	for i, line := range lines {
		marked, n := markStyled(line, strings.ToLower(query), mark)
		lines[i] = marked
		if n > 0 {
			res.Count += n
			res.Lines = append(res.Lines, i)
		}
	}
	res.Text = strings.Join(lines, "\n")
	return res
}

// Next returns the index into m.Lines after cur, wrapping around. A negative
// cur means no line is selected yet.
func (m Matches) Next(cur, step int) int {
	n := len(m.Lines)
	if n == 0 {
		return -1
	}
	if cur < 0 {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return ((cur+step)%n + n) % n
}

func markStyled(line, lowerQuery string, mark func(string) string) (string, int) {
	spans := escapeSeq.FindAllStringIndex(line, -1)
	if spans == nil {
		return markPlain(line, lowerQuery, mark)
	}

	var b strings.Builder
	total, pos := 0, 0
	for _, sp := range spans {
		text, n := markPlain(line[pos:sp[0]], lowerQuery, mark)
		b.WriteString(text)
		b.WriteString(line[sp[0]:sp[1]])
		total += n
		pos = sp[1]
	}
	text, n := markPlain(line[pos:], lowerQuery, mark)
	b.WriteString(text)
	return b.String(), total + n
}

func markPlain(s, lowerQuery string, mark func(string) string) (string, int) {
	lower := strings.ToLower(s)
	// ToLower can change byte lengths; offsets are only safe when it did not.
	if len(lower) != len(s) || !strings.Contains(lower, lowerQuery) {
		return s, 0
	}

	var b strings.Builder
	n, at := 0, 0
	for {
		i := strings.Index(lower[at:], lowerQuery)
		if i < 0 {
			break
		}
		start := at + i
		end := start + len(lowerQuery)
		b.WriteString(s[at:start])
		b.WriteString(mark(s[start:end]))
		n++
		at = end
	}
	b.WriteString(s[at:])
	return b.String(), n
}
