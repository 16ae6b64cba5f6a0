package listing

import (
	"sort"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Sort directions for the explicit re-sort action. Sorting is a distinct
// operation a screen requests (e.g. "sort by total residents ascending"),
// never a side effect of filtering.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort returns a new slice ordered by the field expression. Ties keep the
// source order (stable). Numeric values compare numerically, everything
// else case-insensitively as strings. An invalid expression or direction
// returns the input unchanged.
func Sort(rows []Row, fieldExpr, dir string) []Row {
	if dir != SortAsc && dir != SortDesc {
		return rows
	}
	if _, err := jmespath.Compile(fieldExpr); err != nil {
		return rows
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		less := lessValue(fieldValue(out[i], fieldExpr), fieldValue(out[j], fieldExpr))
		if dir == SortDesc {
			return !less && !equalValue(fieldValue(out[i], fieldExpr), fieldValue(out[j], fieldExpr))
		}
		return less
	})
	return out
}

func fieldValue(row Row, expr string) any {
	val, err := jmespath.Search(expr, row)
	if err != nil {
		return nil
	}
	return val
}

func lessValue(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return strings.ToLower(stringify(a)) < strings.ToLower(stringify(b))
}

func equalValue(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af == bf
	}
	return strings.EqualFold(stringify(a), stringify(b))
}
