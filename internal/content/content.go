// Package content rebuilds the reading-order stream of a paginated document
// from parsed regions: text blocks, tables, and images, each carrying a
// bounding box. Text that sits inside a table or image region is dropped so
// the same content is never emitted twice, and surviving text is re-segmented
// into paragraphs.
package content

import (
	"sort"
	"strings"
)

// overlapTolerance is the margin, in page units, by which a text block may
// stick out of a table or image box and still count as contained in it.
const overlapTolerance = 10

// BBox is an axis-aligned bounding box in page coordinates, top-left origin.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// ContainedIn reports whether b lies inside outer, expanded by tol on every
// side.
func (b BBox) ContainedIn(outer BBox, tol float64) bool {
	return b.X0 >= outer.X0-tol && b.X1 <= outer.X1+tol &&
		b.Y0 >= outer.Y0-tol && b.Y1 <= outer.Y1+tol
}

// TextBlock is one parsed prose region.
type TextBlock struct {
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}

// Table is one parsed table region; Rows includes the header row.
type Table struct {
	Rows [][]string `json:"rows"`
	BBox BBox       `json:"bbox"`
}

// Image is one parsed image region with its payload already encoded by the
// parser.
type Image struct {
	Format string `json:"format"`
	Data   string `json:"data"`
	BBox   BBox   `json:"bbox"`
}

// PageItem is one entry of a page's reading-order stream. Type selects which
// of the remaining fields are set.
type PageItem struct {
	Type    string     `json:"type"`
	Value   string     `json:"value,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Format  string     `json:"format,omitempty"`
	Data    string     `json:"data,omitempty"`
}

const (
	ItemText  = "text"
	ItemTable = "table"
	ItemImage = "image"
)

// ParsedPage is the raw region set of one page as produced by the parsing
// layer.
type ParsedPage struct {
	Number     int         `json:"pageNumber"`
	TextBlocks []TextBlock `json:"textBlocks"`
	Tables     []Table     `json:"tables"`
	Images     []Image     `json:"images"`
}

// Page is one reconstructed page.
type Page struct {
	Number  int        `json:"pageNumber"`
	Content []PageItem `json:"content"`
}

// Result is the reconstructed document.
type Result struct {
	Pages      []Page `json:"pages"`
	TableCount int    `json:"tableCount"`
	ImageCount int    `json:"imageCount"`
	FullText   string `json:"fullText"`
}

// region pairs an item with the ordering coordinate used during the merge;
// the coordinate is discarded once the page is sorted.
type region struct {
	top  float64
	item PageItem
}

// ReconstructPage merges the regions of one page into a single stream sorted
// by top edge. Text blocks contained in a table or image box are excluded,
// then each surviving block is cleaned and re-paragraphed with opts.
func ReconstructPage(blocks []TextBlock, tables []Table, images []Image, opts MergeOptions) []PageItem {
	regions := make([]region, 0, len(blocks)+len(tables)+len(images))

	for _, block := range blocks {
		if coveredByRegion(block.BBox, tables, images) {
			continue
		}
		cleaned := CleanText(block.Text, opts)
		if cleaned == "" {
			continue
		}
		regions = append(regions, region{
			top:  block.BBox.Y0,
			item: PageItem{Type: ItemText, Value: cleaned},
		})
	}
	for _, table := range tables {
		item := PageItem{Type: ItemTable}
		if len(table.Rows) > 0 {
			item.Headers = table.Rows[0]
			item.Rows = table.Rows[1:]
		}
		regions = append(regions, region{top: table.BBox.Y0, item: item})
	}
	for _, img := range images {
		regions = append(regions, region{
			top:  img.BBox.Y0,
			item: PageItem{Type: ItemImage, Format: img.Format, Data: img.Data},
		})
	}

	sort.SliceStable(regions, func(i, j int) bool { return regions[i].top < regions[j].top })

	items := make([]PageItem, 0, len(regions))
	for _, r := range regions {
		items = append(items, r.item)
	}
	return items
}

func coveredByRegion(b BBox, tables []Table, images []Image) bool {
	for _, t := range tables {
		if b.ContainedIn(t.BBox, overlapTolerance) {
			return true
		}
	}
	for _, img := range images {
		if b.ContainedIn(img.BBox, overlapTolerance) {
			return true
		}
	}
	return false
}

// BuildResult reconstructs every page and aggregates counts and the document
// full text (text items only, in page then vertical order).
func BuildResult(pages []ParsedPage, opts MergeOptions) Result {
	result := Result{Pages: make([]Page, 0, len(pages))}

	var textParts []string
	for _, p := range pages {
		items := ReconstructPage(p.TextBlocks, p.Tables, p.Images, opts)
		for _, item := range items {
			switch item.Type {
			case ItemText:
				textParts = append(textParts, item.Value)
			case ItemTable:
				result.TableCount++
			case ItemImage:
				result.ImageCount++
			}
		}
		result.Pages = append(result.Pages, Page{Number: p.Number, Content: items})
	}
	result.FullText = strings.Join(textParts, "\n\n")
	return result
}
