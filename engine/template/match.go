package template

import "regexp"

// match is one candidate regex hit: the byte span plus the submatch index
// slice needed to recover named groups from whichever regex produced it.
type match struct {
	start, end int
	submatches []int
	re         *regexp.Regexp
	reIndex    int
}

// nextMatch scans regexes for the winning match at or after cursor in text,
// applying the tie-break spec.md §4.5 and §4.7 both rely on: earliest
// start, then longest, then earliest-listed regex. It returns false if no
// regex matches anywhere at or after cursor.
func nextMatch(text string, cursor int, regexes []*regexp.Regexp) (match, bool) {
	var best match
	found := false

	for i, re := range regexes {
		loc := re.FindStringSubmatchIndex(text[cursor:])
		if loc == nil {
			continue
		}
		start := cursor + loc[0]
		end := cursor + loc[1]

		if !found ||
			start < best.start ||
			(start == best.start && (end-start) > (best.end-best.start)) {
			best = match{start: start, end: end, submatches: offsetSubmatches(loc, cursor), re: re, reIndex: i}
			found = true
		}
	}

	return best, found
}

// offsetSubmatches rebases a submatch index slice (computed against
// text[cursor:]) back onto the full text's offsets, leaving unmatched (-1)
// entries alone.
func offsetSubmatches(loc []int, cursor int) []int {
	out := make([]int, len(loc))
	for i, v := range loc {
		if v < 0 {
			out[i] = -1
			continue
		}
		out[i] = v + cursor
	}
	return out
}

// namedGroups extracts the named capture groups of re from a submatch index
// slice produced against text, returning nil for any group that didn't
// participate in the match.
func namedGroups(re *regexp.Regexp, text string, submatches []int) map[string]*string {
	out := make(map[string]*string)
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		lo, hi := submatches[2*i], submatches[2*i+1]
		if lo < 0 || hi < 0 {
			out[name] = nil
			continue
		}
		v := text[lo:hi]
		out[name] = &v
	}
	return out
}
