package buffer

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			crlfCount++
			i++
		case text[i] == '\r':
			crCount++
		case text[i] == '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// splitLines splits text on any line terminator. It returns the rows and
// the terminator that followed each of them; breaks has one element fewer
// than lines, which always has at least one element.
func splitLines(text string) (lines, breaks []string) {
	start := 0
	for i := 0; i < len(text); i++ {
		var eol string
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			eol = "\r\n"
		case text[i] == '\r':
			eol = "\r"
		case text[i] == '\n':
			eol = "\n"
		default:
			continue
		}
		lines = append(lines, text[start:i])
		breaks = append(breaks, eol)
		i += len(eol) - 1
		start = i + 1
	}
	return append(lines, text[start:]), breaks
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath associates the buffer with a file path used by Save.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}
