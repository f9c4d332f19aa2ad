// Package format turns raw model output into the house corporate text style:
// plain headings, "・" bullets, one sentence per line and short paragraphs.
package format

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

const (
	// BulletGlyph starts every list item in reshaped text.
	BulletGlyph = "・"

	// WrapThreshold is the length (in grapheme clusters) above which long
	// paragraphs are re-wrapped.
	WrapThreshold = 600
	// ChunkLimit is the maximum length of a re-wrapped chunk.
	ChunkLimit = 400
)

const bulletPrefix = BulletGlyph + " "

var (
	headingPattern       = regexp.MustCompile(`(?m)^#{1,6}[\t\p{Zs}]*`)
	orderedListPattern   = regexp.MustCompile(`(?m)^[\t\p{Zs}]*\d+(?:[)、）]|\.(?:[\t\p{Zs}]|$))[\t\p{Zs}]*`)
	unorderedListPattern = regexp.MustCompile(`(?m)^[\t\p{Zs}]*[-*][\t\p{Zs}]+`)
	blankRunPattern      = regexp.MustCompile(`\n(?:[\t\p{Zs}]*\n){2,}`)
)

// Reshape applies the corporate formatting pipeline. It is pure and total.
func Reshape(text string) string {
	t := strings.ReplaceAll(text, "\r\n", "\n")

	t = headingPattern.ReplaceAllString(t, "")
	t = orderedListPattern.ReplaceAllString(t, bulletPrefix)
	t = unorderedListPattern.ReplaceAllString(t, bulletPrefix)
	t = breakSentences(t)
	t = blankRunPattern.ReplaceAllString(t, "\n\n")

	if uniseg.GraphemeClusterCount(t) > WrapThreshold {
		t = wrapParagraphs(t, ChunkLimit)
	}

	lines := strings.Split(t, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？':
		return true
	}
	return false
}

// continuesCluster reports whether r belongs to the punctuation cluster that
// precedes it, e.g. "？！" or "。」".
func continuesCluster(r rune) bool {
	if isTerminator(r) {
		return true
	}
	switch r {
	case '!', '?', '」', '』', '）', ')', '】', '〉', '》', '"', '\'', '”', '’':
		return true
	}
	return false
}

// breakSentences puts a newline after every sentence terminator that is not
// already followed by one.
func breakSentences(t string) string {
	runes := []rune(t)
	var b strings.Builder
	b.Grow(len(t) + len(t)/16)
	for i, r := range runes {
		b.WriteRune(r)
		if !isTerminator(r) || i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		if next == '\n' || continuesCluster(next) {
			continue
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// wrapParagraphs splits every blank-line separated paragraph longer than
// limit into chunks of at most limit grapheme clusters. Shorter paragraphs
// are returned unchanged.
func wrapParagraphs(t string, limit int) string {
	paragraphs := strings.Split(t, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if uniseg.GraphemeClusterCount(p) <= limit {
			out = append(out, p)
			continue
		}
		out = append(out, wrapParagraph(p, limit)...)
	}
	return strings.Join(out, "\n\n")
}

func wrapParagraph(p string, limit int) []string {
	gs := graphemes(p)
	var chunks []string
	for len(gs) > limit {
		cut := cutIndex(gs, limit)
		if chunk := strings.TrimSpace(strings.Join(gs[:cut], "")); chunk != "" {
			chunks = append(chunks, chunk)
		}
		gs = gs[cut:]
		for len(gs) > 0 && isSpace(gs[0]) {
			gs = gs[1:]
		}
	}
	if rest := strings.TrimSpace(strings.Join(gs, "")); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

// cutIndex picks where to end the next chunk of gs, which is longer than
// limit. The chunk is gs[:i] with 1 <= i <= limit. Line breaks and spaces
// only count in the back half of the window, so a stray early space cannot
// produce a tiny chunk when punctuation sits further along.
func cutIndex(gs []string, limit int) int {
	if i := lastBefore(gs, limit, limit/2, isLineBreak); i > 0 {
		return i
	}
	if i := lastBefore(gs, limit, limit/2, isSpace); i > 0 {
		return i
	}
	for i := limit; i >= 1; i-- {
		if isSoftBreak(gs[i-1]) {
			return i
		}
	}
	if i := lastBefore(gs, limit, 1, isSpace); i > 0 {
		return i
	}
	return limit
}

// lastBefore returns the largest i in [lo, hi] such that gs[i] matches.
func lastBefore(gs []string, hi, lo int, match func(string) bool) int {
	if lo < 1 {
		lo = 1
	}
	for i := hi; i >= lo; i-- {
		if i < len(gs) && match(gs[i]) {
			return i
		}
	}
	return 0
}

func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func isSpace(g string) bool {
	return g != "" && strings.TrimSpace(g) == ""
}

func isLineBreak(g string) bool {
	return strings.Contains(g, "\n")
}

func isSoftBreak(g string) bool {
	switch g {
	case "、", "。", "，", "．", "！", "？", ",", ";", "；", "：":
		return true
	}
	return false
}
