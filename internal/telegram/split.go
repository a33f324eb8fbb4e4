package telegram

import "strings"

// MaxMessageLength is the Telegram limit for a single message, in UTF-16 code units
const MaxMessageLength = 4096

// SplitMessage splits text into chunks no longer than limit. Chunks break between
// leagues where possible, then between lines, and only cut inside a line that is
// longer than limit on its own.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if text == "" {
		return nil
	}
	if textLength(text) <= limit {
		return []string{text}
	}

	s := &splitter{limit: limit}
	for _, block := range strings.Split(text, "\n\n") {
		if s.add(block, "\n\n") {
			continue
		}
		for i, line := range strings.Split(block, "\n") {
			sep := "\n"
			if i == 0 {
				sep = "\n\n"
			}
			if s.add(line, sep) {
				continue
			}
			s.flush()
			s.chunks = append(s.chunks, cutLine(line, limit)...)
		}
	}
	s.flush()

	return s.chunks
}

type splitter struct {
	limit   int
	chunks  []string
	current string
}

// add appends part to the current chunk, starting a new chunk when it does not fit.
// Returns false when part is longer than a whole chunk.
func (s *splitter) add(part, sep string) bool {
	if textLength(part) > s.limit {
		return false
	}
	if s.current == "" {
		s.current = part
		return true
	}
	if textLength(s.current)+textLength(sep)+textLength(part) <= s.limit {
		s.current += sep + part
		return true
	}
	s.flush()
	s.current = part
	return true
}

func (s *splitter) flush() {
	if s.current != "" {
		s.chunks = append(s.chunks, s.current)
		s.current = ""
	}
}

// cutLine cuts a single line into pieces of at most limit code units
func cutLine(line string, limit int) []string {
	var pieces []string
	var b strings.Builder
	n := 0
	for _, r := range line {
		w := runeLength(r)
		if n+w > limit && b.Len() > 0 {
			pieces = append(pieces, b.String())
			b.Reset()
			n = 0
		}
		b.WriteRune(r)
		n += w
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}

// textLength counts UTF-16 code units, which is how Telegram measures messages
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += runeLength(r)
	}
	return n
}

func runeLength(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
