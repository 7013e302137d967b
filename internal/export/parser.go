// Package export parses the plain-text chat files produced by a messaging
// app's "export chat" feature into discrete message records.
package export

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Message is one parsed export message. Date is the bracketed timestamp
// kept verbatim as a string. Sender is nil for system and annotation lines,
// which carry no display name. Contents holds the first line after the
// header plus any continuation lines, joined with newlines.
type Message struct {
	Date     string
	Sender   *string
	Contents string
}

// headerRe matches a line that starts a new message: a bracketed
// DD.MM.YY, HH:MM:SS timestamp, then optionally "Sender: ". Sender names
// never contain a colon.
var headerRe = regexp.MustCompile(`^\[(\d{2}\.\d{2}\.\d{2}, \d{2}:\d{2}:\d{2})\] (?:([^:]+): )?`)

// Exports from some platforms embed bidirectional text-direction marks at
// line starts. They must not end up in any stored field.
var directionMarks = strings.NewReplacer("‎", "", "‏", "")

// Parser walks an export text top to bottom and yields messages one at a
// time, in export order. It is single-pass and cannot be rewound.
type Parser struct {
	lines  []string
	pos    int
	open   *Message
	logger *zap.Logger
}

// NewParser prepares a parser over the raw export text. A nil logger
// silences parse anomaly warnings.
func NewParser(raw string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		lines:  strings.Split(directionMarks.Replace(raw), "\n"),
		logger: logger,
	}
}

// Next returns the next message, or ok=false once the text is exhausted.
// Lines that precede the first header cannot belong to any message; they
// are logged and dropped.
func (p *Parser) Next() (Message, bool) {
	for p.pos < len(p.lines) {
		line := strings.TrimSuffix(p.lines[p.pos], "\r")
		p.pos++

		if m := headerRe.FindStringSubmatch(line); m != nil {
			next := Message{Date: m[1], Contents: line[len(m[0]):]}
			if m[2] != "" {
				sender := m[2]
				next.Sender = &sender
			}
			if p.open != nil {
				done := *p.open
				p.open = &next
				return done, true
			}
			p.open = &next
			continue
		}

		if p.open == nil {
			if line != "" {
				p.logger.Warn("line outside any message, dropped", zap.String("line", line))
			}
			continue
		}
		p.open.Contents += "\n" + line
	}

	if p.open != nil {
		done := *p.open
		p.open = nil
		return done, true
	}
	return Message{}, false
}
