package pagination

import "strings"

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// ListArgs holds list inputs from controllers or services: a 1-based page,
// a page size, and optional search/status filters. Unknown filter values
// degrade to "no filter" at the query site rather than failing.
type ListArgs struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"search,omitempty"`
	Status  string `json:"status,omitempty"`
}

// NormalizePerPage enforces the configured default and maximum page sizes.
func NormalizePerPage(perPage int) int {
	if perPage <= 0 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// Normalize returns a copy with page, per_page, and search cleaned up.
func Normalize(args ListArgs) ListArgs {
	args.PerPage = NormalizePerPage(args.PerPage)
	if args.Page <= 0 {
		args.Page = 1
	}
	args.Search = strings.TrimSpace(args.Search)
	args.Status = strings.TrimSpace(args.Status)
	return args
}

// Offset returns the row offset for the normalized args.
func (a ListArgs) Offset() int {
	page := a.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * NormalizePerPage(a.PerPage)
}

// SearchPattern returns a LIKE pattern for the search term, or "" when unset.
func (a ListArgs) SearchPattern() string {
	if a.Search == "" {
		return ""
	}
	return "%" + a.Search + "%"
}
