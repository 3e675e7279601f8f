package request

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gem5-vision/resources-api/internal/domain"
	"github.com/gem5-vision/resources-api/internal/domain/search/filter"
	"github.com/gem5-vision/resources-api/internal/domain/search/sortby"
)

// Search parameter limits.
const (
	MaxQueryLength  = 200
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// containsStrip removes characters outside the accepted search-term alphabet.
var containsStrip = regexp.MustCompile(`[^\w\s\-.,:;!?@#%&()\[\]{}<>/\\=+*'"]`)

// Request is a validated search query: an optional free-text term, a filter
// predicate, an ordering, and pagination bounds.
type Request struct {
	containsStr string
	filters     filter.Expression
	sort        sortby.Key
	page        int
	pageSize    int
}

// New validates and normalizes search parameters. All validation errors wrap
// domain.ErrInvalidArgument; nothing touches the store before they pass.
func New(containsStr, mustInclude, sort string, page, pageSize int) (Request, error) {
	containsStr = containsStrip.ReplaceAllString(strings.TrimSpace(containsStr), "")
	if len(containsStr) > MaxQueryLength {
		containsStr = containsStr[:MaxQueryLength]
	}

	filters, err := filter.Parse(mustInclude)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err)
	}

	if page < 1 {
		return Request{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidArgument)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Request{}, fmt.Errorf(
			"%w: page-size must be between 1 and %d", domain.ErrInvalidArgument, MaxPageSize,
		)
	}

	return Request{
		containsStr: containsStr,
		filters:     filters,
		sort:        sortby.Parse(sort),
		page:        page,
		pageSize:    pageSize,
	}, nil
}

// ContainsStr returns the sanitized free-text search term ("" when absent).
func (r Request) ContainsStr() string { return r.containsStr }

// Filters returns the parsed filter predicate.
func (r Request) Filters() filter.Expression { return r.filters }

// Sort returns the requested ordering.
func (r Request) Sort() sortby.Key { return r.sort }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// PageSize returns the number of documents per page.
func (r Request) PageSize() int { return r.pageSize }

// Skip returns the number of matches preceding the requested page.
func (r Request) Skip() int { return (r.page - 1) * r.pageSize }
