package content_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/content"
)

func TestReconstructPage_TextInsideTableExcluded(t *testing.T) {
	blocks := []content.TextBlock{
		{Text: "Cell text duplicated by the table extractor.", BBox: content.BBox{X0: 105, Y0: 205, X1: 295, Y1: 245}},
		{Text: "Prose above the table.", BBox: content.BBox{X0: 50, Y0: 40, X1: 400, Y1: 60}},
	}
	tables := []content.Table{
		{Rows: [][]string{{"Name", "Value"}, {"a", "1"}}, BBox: content.BBox{X0: 100, Y0: 200, X1: 300, Y1: 250}},
	}

	items := content.ReconstructPage(blocks, tables, nil, content.DefaultMergeOptions())

	require.Len(t, items, 2)
	assert.Equal(t, content.ItemText, items[0].Type)
	assert.Equal(t, "Prose above the table.", items[0].Value)
	assert.Equal(t, content.ItemTable, items[1].Type)
	for _, item := range items {
		assert.NotContains(t, item.Value, "duplicated")
	}
}

func TestReconstructPage_ToleranceMargin(t *testing.T) {
	table := content.Table{Rows: [][]string{{"h"}}, BBox: content.BBox{X0: 100, Y0: 100, X1: 200, Y1: 200}}

	// Sticks out 10 units: still contained.
	inside := content.TextBlock{Text: "inside", BBox: content.BBox{X0: 90, Y0: 90, X1: 210, Y1: 210}}
	// Sticks out 11 units: survives.
	outside := content.TextBlock{Text: "outside", BBox: content.BBox{X0: 89, Y0: 90, X1: 210, Y1: 210}}

	items := content.ReconstructPage([]content.TextBlock{inside, outside}, []content.Table{table}, nil, content.DefaultMergeOptions())

	var texts []string
	for _, item := range items {
		if item.Type == content.ItemText {
			texts = append(texts, item.Value)
		}
	}
	assert.Equal(t, []string{"outside"}, texts)
}

func TestReconstructPage_TextInsideImageExcluded(t *testing.T) {
	img := content.Image{Format: "png", Data: "data:image/png;base64,xxxx", BBox: content.BBox{X0: 0, Y0: 0, X1: 500, Y1: 300}}
	caption := content.TextBlock{Text: "watermark", BBox: content.BBox{X0: 10, Y0: 10, X1: 100, Y1: 30}}
	below := content.TextBlock{Text: "Figure caption below.", BBox: content.BBox{X0: 0, Y0: 320, X1: 500, Y1: 340}}

	items := content.ReconstructPage([]content.TextBlock{caption, below}, nil, []content.Image{img}, content.DefaultMergeOptions())

	require.Len(t, items, 2)
	assert.Equal(t, content.ItemImage, items[0].Type)
	assert.Equal(t, "png", items[0].Format)
	assert.Equal(t, "Figure caption below.", items[1].Value)
}

func TestReconstructPage_SortedByTopEdge(t *testing.T) {
	blocks := []content.TextBlock{
		{Text: "third", BBox: content.BBox{Y0: 500, Y1: 520, X1: 100}},
		{Text: "first", BBox: content.BBox{Y0: 10, Y1: 30, X1: 100}},
	}
	tables := []content.Table{
		{Rows: [][]string{{"h"}}, BBox: content.BBox{Y0: 250, Y1: 300, X0: 200, X1: 400}},
	}
	images := []content.Image{
		{Format: "jpeg", BBox: content.BBox{Y0: 400, Y1: 450, X0: 200, X1: 400}},
	}

	items := content.ReconstructPage(blocks, tables, images, content.DefaultMergeOptions())

	require.Len(t, items, 4)
	assert.Equal(t, "first", items[0].Value)
	assert.Equal(t, content.ItemTable, items[1].Type)
	assert.Equal(t, content.ItemImage, items[2].Type)
	assert.Equal(t, "third", items[3].Value)
}

func TestReconstructPage_TableHeaderSplit(t *testing.T) {
	table := content.Table{Rows: [][]string{{"Name", "Value"}, {"a", "1"}, {"b", "2"}}}
	items := content.ReconstructPage(nil, []content.Table{table}, nil, content.DefaultMergeOptions())

	require.Len(t, items, 1)
	assert.Equal(t, []string{"Name", "Value"}, items[0].Headers)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, items[0].Rows)
}

func TestBuildResult_CountsAndFullText(t *testing.T) {
	pages := []content.ParsedPage{
		{
			Number: 1,
			TextBlocks: []content.TextBlock{
				{Text: "Page one prose.", BBox: content.BBox{Y0: 10, Y1: 30, X1: 100}},
			},
			Tables: []content.Table{{Rows: [][]string{{"h"}}, BBox: content.BBox{Y0: 100, Y1: 150, X0: 200, X1: 400}}},
		},
		{
			Number: 2,
			TextBlocks: []content.TextBlock{
				{Text: "Page two prose.", BBox: content.BBox{Y0: 10, Y1: 30, X1: 100}},
			},
			Images: []content.Image{{Format: "png", BBox: content.BBox{Y0: 100, Y1: 200, X0: 200, X1: 400}}},
		},
	}

	result := content.BuildResult(pages, content.DefaultMergeOptions())

	require.Len(t, result.Pages, 2)
	assert.Equal(t, 1, result.Pages[0].Number)
	assert.Equal(t, 2, result.Pages[1].Number)
	assert.Equal(t, 1, result.TableCount)
	assert.Equal(t, 1, result.ImageCount)
	assert.Equal(t, "Page one prose.\n\nPage two prose.", result.FullText)
}

func TestMergeLines_WrappedParagraph(t *testing.T) {
	// One paragraph hard-wrapped over several lines merges back into one.
	wrapped := strings.Join([]string{
		"The quick brown fox jumps over the",
		"lazy dog near the riverbank while",
		"the sun sets behind the hills.",
	}, "\n")

	merged := content.MergeLines(wrapped, content.DefaultMergeOptions())
	assert.Equal(t, "The quick brown fox jumps over the lazy dog near the riverbank while the sun sets behind the hills.", merged)
}

func TestMergeLines_Hyphenation(t *testing.T) {
	merged := content.MergeLines("a long recon-\nstruction example", content.DefaultMergeOptions())
	assert.Equal(t, "a long reconstruction example", merged)
}

func TestMergeLines_BlankLineFlushes(t *testing.T) {
	merged := content.MergeLines("first paragraph\n\nsecond paragraph", content.DefaultMergeOptions())
	assert.Equal(t, "first paragraph\n\nsecond paragraph", merged)
}

func TestMergeLines_HeadingAndListStartNewParagraphs(t *testing.T) {
	merged := content.MergeLines("intro text\n2.1 Results\n- item one\n- item two", content.DefaultMergeOptions())
	assert.Equal(t, "intro text\n\n2.1 Results\n\n- item one\n\n- item two", merged)
}

func TestMergeLines_SentenceBoundaryNeedsMinLength(t *testing.T) {
	opts := content.DefaultMergeOptions()

	// Buffer is short of the threshold: the uppercase continuation is joined.
	short := content.MergeLines("Short sentence.\nNext line", opts)
	assert.Equal(t, "Short sentence. Next line", short)

	// Past the threshold the sentence boundary splits the paragraph.
	long := content.MergeLines(
		"This opening sentence is comfortably longer than sixty characters total.\nNext paragraph starts here",
		opts)
	assert.Equal(t,
		"This opening sentence is comfortably longer than sixty characters total.\n\nNext paragraph starts here",
		long)
}

func TestCleanText(t *testing.T) {
	opts := content.DefaultMergeOptions()

	t.Run("dot leaders collapsed", func(t *testing.T) {
		got := content.CleanText("Introduction .......... 3\nBody text here", opts)
		assert.NotContains(t, got, "...")
	})

	t.Run("page number lines removed", func(t *testing.T) {
		got := content.CleanText("real content\n42\nmore content", opts)
		assert.NotContains(t, got, "42")
	})

	t.Run("multi-space runs collapsed", func(t *testing.T) {
		got := content.CleanText("spaced    out     words", opts)
		assert.Equal(t, "spaced out words", got)
	})

	t.Run("empty after cleanup", func(t *testing.T) {
		assert.Equal(t, "", content.CleanText("  17  \n", opts))
	})
}
