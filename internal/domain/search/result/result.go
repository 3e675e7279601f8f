package result

import "github.com/gem5-vision/resources-api/internal/domain/resource"

// Page is one page of search matches plus the total match count computed
// before slicing.
type Page struct {
	documents  []resource.Resource
	totalCount int
}

// NewPage creates a result page.
func NewPage(documents []resource.Resource, totalCount int) Page {
	return Page{documents: documents, totalCount: totalCount}
}

// Documents returns the matches on this page, in ranked order.
func (p Page) Documents() []resource.Resource { return p.documents }

// TotalCount returns the number of matches before pagination.
func (p Page) TotalCount() int { return p.totalCount }
