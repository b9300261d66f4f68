package rewriter

import "regexp"

// inlineTag matches exactly the inline markup this engine tolerates when
// ignore_markup is set (spec.md §4.7's Open Question on ignore_markup is
// resolved here): <i>, <em>, <u>, <b>, <strong>, and <span ...> (with any
// attributes), plus their closing tags.
var inlineTag = regexp.MustCompile(`(?i)</?(?:i|em|u|b|strong)>|<span(?:\s+[^>]*)?>|</span>`)

// StripInlineTags removes every inlineTag match from text and returns the
// resulting view alongside a mapping from each byte offset in that view
// back to the corresponding offset in text. toOriginal has length
// len(view)+1: toOriginal[i] is the original offset of view byte i, and
// toOriginal[len(view)] is len(text), so end-exclusive spans map cleanly.
func StripInlineTags(text string) (view string, toOriginal []int) {
	var b []byte
	var offsets []int

	cursor := 0
	for _, loc := range inlineTag.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		for i := cursor; i < start; i++ {
			b = append(b, text[i])
			offsets = append(offsets, i)
		}
		cursor = end
	}
	for i := cursor; i < len(text); i++ {
		b = append(b, text[i])
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	return string(b), offsets
}

// MapSpan translates a [start,end) span in a StripInlineTags view back into
// the original text's coordinate space. The end offset is derived from the
// last INCLUDED view byte's original position plus one, not from
// toOriginal[end] directly — when a stripped tag sits immediately after the
// span, toOriginal[end] is the next kept byte's position on the far side of
// that tag, which would wrongly swallow the stripped markup into the span.
func MapSpan(toOriginal []int, start, end int) (int, int) {
	if end == 0 {
		return toOriginal[start], toOriginal[0]
	}
	return toOriginal[start], toOriginal[end-1] + 1
}
