package template

import "regexp"

// NextShortform finds the earliest-starting, longest, earliest-listed match
// against c's compiled shortform regexes within text[cursor:end], and
// constructs the resulting child Citation (spec.md §4.7 step 2). It returns
// false if no shortform regex matches in range, or if the match produced an
// invalid Citation (a failed mandatory edit).
func (c *Citation) NextShortform(text string, cursor, end int) (*Citation, bool) {
	return c.nextChild(text, cursor, end, c.shortformRegexes, false)
}

// NextIDForm is NextShortform's id-form counterpart (spec.md §4.7 step 5),
// searching c's compiled id regexes (which always include the universal
// bare-id pattern).
func (c *Citation) NextIDForm(text string, cursor, end int) (*Citation, bool) {
	return c.nextChild(text, cursor, end, c.idformRegexes, true)
}

func (c *Citation) nextChild(text string, cursor, end int, regexes []*regexp.Regexp, isID bool) (*Citation, bool) {
	m, ok := nextMatch(text[:end], cursor, regexes)
	if !ok {
		return nil, false
	}
	raw := namedGroups(m.re, text[:end], m.submatches)
	hasCaptures := false
	for _, name := range m.re.SubexpNames() {
		if name != "" {
			hasCaptures = true
			break
		}
	}
	return newChildCitation(c, text, m.start, m.end, raw, hasCaptures, isID)
}
