package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripInlineTagsRemovesToleratedTags(t *testing.T) {
	text := "See <i>42 U.S.C. § 1983</i> for details."
	view, toOriginal := StripInlineTags(text)

	assert.Equal(t, "See 42 U.S.C. § 1983 for details.", view)
	assert.Equal(t, len(text), toOriginal[len(view)])
}

func TestStripInlineTagsLeavesUntoleratedTagsAlone(t *testing.T) {
	text := "See <p>42 U.S.C. § 1983</p>."
	view, _ := StripInlineTags(text)
	assert.Equal(t, text, view)
}

func TestStripInlineTagsHandlesSpanWithAttributes(t *testing.T) {
	text := `Under <span class="cite">42 U.S.C. § 1983</span>.`
	view, _ := StripInlineTags(text)
	assert.Equal(t, "Under 42 U.S.C. § 1983.", view)
}

func TestMapSpanRoundTrips(t *testing.T) {
	text := "a<i>bc</i>d"
	view, toOriginal := StripInlineTags(text)
	require.Equal(t, "abcd", view)

	// "bc" sits at view[1:3]; in the original text it's at [4:6] (after "a<i>").
	start, end := MapSpan(toOriginal, 1, 3)
	assert.Equal(t, "bc", text[start:end])
}

func TestMapSpanDoesNotSwallowTrailingStrippedTag(t *testing.T) {
	text := "a<i>bc</i>"
	view, toOriginal := StripInlineTags(text)
	require.Equal(t, "abc", view)

	// The span covers the whole view ("abc"); its mapped end must land
	// right after 'c', not past the trailing "</i>" that follows it.
	start, end := MapSpan(toOriginal, 0, len(view))
	assert.Equal(t, "a<i>bc", text[start:end])
}
