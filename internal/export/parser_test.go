package export

import (
	"strings"
	"testing"
)

func collect(t *testing.T, raw string) []Message {
	t.Helper()
	p := NewParser(raw, nil)
	var msgs []Message
	for {
		m, ok := p.Next()
		if !ok {
			return msgs
		}
		msgs = append(msgs, m)
	}
}

func TestParseTwoMessages(t *testing.T) {
	raw := "[01.02.21, 10:00:00] Alice: hello\n" +
		"[01.02.21, 10:00:05] Bob: <attached: pic.jpg>\nworld"

	msgs := collect(t, raw)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}

	first := msgs[0]
	if first.Date != "01.02.21, 10:00:00" {
		t.Errorf("first date = %q", first.Date)
	}
	if first.Sender == nil || *first.Sender != "Alice" {
		t.Errorf("first sender = %v, want Alice", first.Sender)
	}
	if first.Contents != "hello" {
		t.Errorf("first contents = %q, want hello", first.Contents)
	}

	second := msgs[1]
	if second.Date != "01.02.21, 10:00:05" {
		t.Errorf("second date = %q", second.Date)
	}
	if second.Sender == nil || *second.Sender != "Bob" {
		t.Errorf("second sender = %v, want Bob", second.Sender)
	}
	if second.Contents != "<attached: pic.jpg>\nworld" {
		t.Errorf("second contents = %q", second.Contents)
	}
}

func TestParseNoHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain text", "just some text\nwithout any headers"},
		{"almost a header", "[1.2.21, 10:00:00] Alice: wrong day width"},
		{"blank lines", "\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msgs := collect(t, tt.raw); len(msgs) != 0 {
				t.Errorf("got %d messages, want 0", len(msgs))
			}
		})
	}
}

func TestParseSystemMessage(t *testing.T) {
	raw := "[01.02.21, 09:59:59] Messages to this chat are secured"

	msgs := collect(t, raw)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Sender != nil {
		t.Errorf("system message sender = %q, want nil", *msgs[0].Sender)
	}
	if msgs[0].Contents != "Messages to this chat are secured" {
		t.Errorf("contents = %q", msgs[0].Contents)
	}
}

func TestParseMultilineBody(t *testing.T) {
	raw := "[01.02.21, 10:00:00] Alice: first\n\nsecond\n[01.02.21, 10:01:00] Bob: bye"

	msgs := collect(t, raw)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	// The embedded blank line survives.
	if msgs[0].Contents != "first\n\nsecond" {
		t.Errorf("contents = %q, want %q", msgs[0].Contents, "first\n\nsecond")
	}
}

func TestParseCRLF(t *testing.T) {
	raw := "[01.02.21, 10:00:00] Alice: hello\r\ncontinued\r\n[01.02.21, 10:01:00] Bob: bye"

	msgs := collect(t, raw)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Contents != "hello\ncontinued" {
		t.Errorf("contents = %q", msgs[0].Contents)
	}
	if strings.Contains(msgs[1].Contents, "\r") {
		t.Errorf("carriage return leaked into contents %q", msgs[1].Contents)
	}
}

func TestParseStripsDirectionMarks(t *testing.T) {
	raw := "‎[01.02.21, 10:00:00] Alice: ‏hello"

	msgs := collect(t, raw)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	for _, field := range []string{msgs[0].Date, *msgs[0].Sender, msgs[0].Contents} {
		if strings.ContainsAny(field, "‎‏") {
			t.Errorf("direction mark leaked into %q", field)
		}
	}
	if msgs[0].Contents != "hello" {
		t.Errorf("contents = %q, want hello", msgs[0].Contents)
	}
}

func TestParseDropsLeadingJunk(t *testing.T) {
	raw := "orphan line before any message\n[01.02.21, 10:00:00] Alice: hello"

	msgs := collect(t, raw)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if strings.Contains(msgs[0].Contents, "orphan") {
		t.Errorf("orphan line leaked into %q", msgs[0].Contents)
	}
}

func TestParseSenderWithSpaces(t *testing.T) {
	raw := "[01.02.21, 10:00:00] Alice Example: hi there"

	msgs := collect(t, raw)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Sender == nil || *msgs[0].Sender != "Alice Example" {
		t.Errorf("sender = %v, want Alice Example", msgs[0].Sender)
	}
	if msgs[0].Contents != "hi there" {
		t.Errorf("contents = %q", msgs[0].Contents)
	}
}

func TestParserIsSinglePass(t *testing.T) {
	p := NewParser("[01.02.21, 10:00:00] Alice: hello", nil)
	if _, ok := p.Next(); !ok {
		t.Fatal("expected one message")
	}
	if _, ok := p.Next(); ok {
		t.Error("exhausted parser yielded another message")
	}
	if _, ok := p.Next(); ok {
		t.Error("exhausted parser yielded another message")
	}
}
