package httpx

import (
	"net/url"
	"strings"

	"github.com/kebelehub/rfm-ui-api/internal/listing"
)

// Reserved query parameter names. Everything else in the query string is
// treated as a categorical constraint on the row field of the same name.
const (
	paramQuery   = "q"
	paramTab     = "tab"
	paramSort    = "sort"
	paramDir     = "dir"
	paramRefresh = "refresh"
)

// ParseFilter builds the screen filter from URL query parameters.
// ?q= is the free-text query, ?tab= the coarse tab selection, and any
// other parameter an exact-match categorical constraint (empty values are
// dropped, which is how a single constraint is cleared).
func ParseFilter(q url.Values) listing.Filter {
	f := listing.Filter{
		Query: strings.TrimSpace(q.Get(paramQuery)),
		Tab:   strings.TrimSpace(q.Get(paramTab)),
	}

	for key, vals := range q {
		switch key {
		case paramQuery, paramTab, paramSort, paramDir, paramRefresh:
			continue
		}
		if len(vals) == 0 {
			continue
		}
		val := strings.TrimSpace(vals[0])
		if val == "" {
			continue
		}
		if f.Categories == nil {
			f.Categories = make(map[string]string)
		}
		f.Categories[key] = val
	}

	return f
}

// ParseSortParam extracts and validates sort field and direction from URL
// query parameters. It supports ?sort=field:dir and ?sort=field&dir=dir.
// The direction must be "asc" or "desc"; anything else returns an empty
// direction, which downstream means "do not sort".
func ParseSortParam(q url.Values) (string, string) {
	sortParam := strings.TrimSpace(q.Get(paramSort))
	dirParam := strings.ToLower(strings.TrimSpace(q.Get(paramDir)))

	parts := strings.SplitN(sortParam, ":", 2)
	if len(parts) == 2 {
		fieldPart := strings.TrimSpace(parts[0])
		dirPart := strings.ToLower(strings.TrimSpace(parts[1]))
		if dirPart == listing.SortAsc || dirPart == listing.SortDesc {
			return fieldPart, dirPart
		}
		return fieldPart, ""
	}

	if dirParam == listing.SortAsc || dirParam == listing.SortDesc {
		return sortParam, dirParam
	}

	return sortParam, ""
}
