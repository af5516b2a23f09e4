package buffer

import "regexp"

// ScanMatch is passed to Scan callbacks for every match.
type ScanMatch struct {
	// Range covers the match within its row.
	Range Range

	// MatchText is the matched text.
	MatchText string

	// Submatches holds the text of capture groups; index 0 is the whole match.
	Submatches []string

	replacement *string
	stop        bool
}

// Replace schedules the match to be replaced with text.
func (m *ScanMatch) Replace(text string) {
	m.replacement = &text
}

// Stop ends the scan after the current match.
func (m *ScanMatch) Stop() {
	m.stop = true
}

// FindAll returns the range of every match of re, row by row. Patterns are
// matched against each row separately, so ^ and $ anchor to row boundaries.
func (b *Buffer) FindAll(re *regexp.Regexp) []Range {
	var ranges []Range
	for row, line := range b.Lines() {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			ranges = append(ranges, RowRange(row, loc[0], loc[1]))
		}
	}
	return ranges
}

// Scan calls fn for every match of re, row by row. Replacements requested
// through ScanMatch.Replace are applied afterwards in one transaction.
func (b *Buffer) Scan(re *regexp.Regexp, fn func(m *ScanMatch)) error {
	type edit struct {
		r    Range
		text string
	}
	var edits []edit

scan:
	for row, line := range b.Lines() {
		for _, loc := range re.FindAllStringSubmatchIndex(line, -1) {
			m := &ScanMatch{
				Range:      RowRange(row, loc[0], loc[1]),
				MatchText:  line[loc[0]:loc[1]],
				Submatches: submatches(line, loc),
			}
			fn(m)
			if m.replacement != nil && *m.replacement != m.MatchText {
				edits = append(edits, edit{r: m.Range, text: *m.replacement})
			}
			if m.stop {
				break scan
			}
		}
	}

	if len(edits) == 0 {
		return nil
	}

	return b.Transact(func() error {
		for i := len(edits) - 1; i >= 0; i-- {
			if _, err := b.SetTextInRange(edits[i].r, edits[i].text); err != nil {
				return err
			}
		}
		return nil
	})
}

func submatches(line string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = line[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}
