// Package render splits a finished reply into the display blocks the chat
// UI draws, and reports whether the contact call-to-action is present.
package render

import (
	"regexp"
	"strings"

	ctax "github.com/solution-hr/solution-chat/agent/cta"
	formatx "github.com/solution-hr/solution-chat/agent/format"
)

const (
	ContactFormURL = "https://solution-hr.com/contact"
	ContactPhone   = "06-6203-0222"
	ContactTelURI  = "tel:0662030222"
)

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockHeading   BlockKind = "heading"
)

// Block is one display unit. Spans and ItemSpans are only set when the text
// carries **bold** markup; Text and Items keep the raw markup either way.
type Block struct {
	Kind      BlockKind `json:"kind"`
	Text      string    `json:"text,omitempty"`
	Spans     []Span    `json:"spans,omitempty"`
	Items     []string  `json:"items,omitempty"`
	ItemSpans [][]Span  `json:"item_spans,omitempty"`
}

type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

var boldSpanPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// InlineSpans splits s around non-greedy **...** runs. It returns nil when s
// has no bold run.
func InlineSpans(s string) []Span {
	matches := boldSpanPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}
	spans := make([]Span, 0, 2*len(matches)+1)
	prev := 0
	for _, m := range matches {
		if m[0] > prev {
			spans = append(spans, Span{Text: s[prev:m[0]]})
		}
		spans = append(spans, Span{Text: s[m[2]:m[3]], Bold: true})
		prev = m[1]
	}
	if prev < len(s) {
		spans = append(spans, Span{Text: s[prev:]})
	}
	return spans
}

type Contact struct {
	FormURL string `json:"form_url"`
	Phone   string `json:"phone"`
	TelURI  string `json:"tel_uri"`
}

type Rendered struct {
	Blocks  []Block  `json:"blocks"`
	CTA     bool     `json:"cta"`
	Contact *Contact `json:"contact,omitempty"`
}

// Split parses reply. The CTA marker and the separator line in front of it
// are removed before the text is grouped into blocks.
func Split(reply string) Rendered {
	hasCTA := strings.Contains(reply, ctax.Marker)
	base := strings.TrimSpace(ctax.Strip(reply))
	if hasCTA {
		base = strings.TrimSpace(strings.TrimSuffix(base, "---"))
	}

	s := splitter{blocks: []Block{}}
	for _, raw := range strings.Split(base, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			s.flushList()
			s.flushParagraph()
		case strings.HasPrefix(line, formatx.BulletGlyph):
			s.flushParagraph()
			item := strings.TrimPrefix(line, formatx.BulletGlyph)
			item = strings.TrimPrefix(item, " ")
			s.list = append(s.list, item)
		default:
			s.flushList()
			s.paragraph = append(s.paragraph, line)
		}
	}
	s.flushList()
	s.flushParagraph()

	out := Rendered{Blocks: s.blocks, CTA: hasCTA}
	if hasCTA {
		out.Contact = &Contact{FormURL: ContactFormURL, Phone: ContactPhone, TelURI: ContactTelURI}
	}
	return out
}

type splitter struct {
	blocks    []Block
	paragraph []string
	list      []string
}

func (s *splitter) flushParagraph() {
	if len(s.paragraph) == 0 {
		return
	}
	content := strings.Join(s.paragraph, "\n")
	s.paragraph = nil

	if heading, ok := boldOnly(content); ok {
		s.blocks = append(s.blocks, Block{Kind: BlockHeading, Text: heading})
		return
	}
	s.blocks = append(s.blocks, Block{Kind: BlockParagraph, Text: content, Spans: InlineSpans(content)})
}

func (s *splitter) flushList() {
	if len(s.list) == 0 {
		return
	}
	block := Block{Kind: BlockList, Items: s.list}
	for _, item := range s.list {
		if InlineSpans(item) != nil {
			block.ItemSpans = make([][]Span, len(s.list))
			for i, it := range s.list {
				block.ItemSpans[i] = InlineSpans(it)
				if block.ItemSpans[i] == nil {
					block.ItemSpans[i] = []Span{{Text: it}}
				}
			}
			break
		}
	}
	s.blocks = append(s.blocks, block)
	s.list = nil
}

// boldOnly reports whether content is a single **...** span.
func boldOnly(content string) (string, bool) {
	if len(content) <= 4 || !strings.HasPrefix(content, "**") || !strings.HasSuffix(content, "**") {
		return "", false
	}
	inner := content[2 : len(content)-2]
	if strings.Contains(inner, "**") || strings.Contains(inner, "\n") || strings.TrimSpace(inner) == "" {
		return "", false
	}
	return strings.TrimSpace(inner), true
}
