package listing

// Package listing is the generic list/filter controller behind the
// resident, report, document, and audit screens. It loads a collection
// once, keeps it in memory, and answers every filter change from that
// snapshot: no filter operation ever reaches the network.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Row is one externally sourced record: a flat mapping of field name to
// primitive value. Rows carry no client-side identity beyond what the
// upstream API assigned.
type Row = map[string]any

// Fetcher loads the full collection from the upstream API.
type Fetcher func(ctx context.Context) ([]Row, error)

// Options fixes per-screen behavior of a controller.
type Options struct {
	// SearchFields are JMESPath expressions evaluated per row; the free-text
	// query matches if any of them contains it (OR across fields).
	SearchFields []string
	// TabField is the row field the tab selection filters on. Empty
	// disables tabs for the screen.
	TabField string
	// TabAll is the tab value meaning "no constraint". Defaults to "all".
	TabAll string
}

// Filter is the composable filter state for one screen. The zero value
// means "no constraint"; Clear is assigning the zero value, which by
// construction never refetches.
type Filter struct {
	// Query is matched case-insensitively as a substring against the
	// screen's search fields.
	Query string
	// Categories are exact-match constraints, AND-combined. An empty value
	// removes the constraint for that field.
	Categories map[string]string
	// Tab is the coarse categorical selection (e.g. active/inactive/all).
	Tab string
}

// Controller owns one screen's collection and filter evaluation.
type Controller struct {
	mu    sync.Mutex
	fetch Fetcher
	opts  Options

	rows    []Row
	loaded  bool
	lastErr error
}

// NewController validates options and builds a controller. Search field
// expressions are compile-checked up front so a bad screen definition
// fails at wiring time, not per keystroke.
func NewController(fetch Fetcher, opts Options) (*Controller, error) {
	if fetch == nil {
		return nil, errors.New("fetcher is required")
	}
	for _, expr := range opts.SearchFields {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile search field %q: %w", expr, err)
		}
	}
	if opts.TabAll == "" {
		opts.TabAll = "all"
	}
	return &Controller{fetch: fetch, opts: opts}, nil
}

// Load fetches the full collection. A failure after a successful prior
// fetch keeps the stale rows visible and records the error; a first-load
// failure leaves the controller empty with the error set.
func (c *Controller) Load(ctx context.Context) error {
	rows, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.rows = rows
	c.loaded = true
	c.lastErr = nil
	return nil
}

// Snapshot is the view state handed to the screen.
type Snapshot struct {
	Rows []Row
	// Loaded is false until the first successful fetch.
	Loaded bool
	// Err is the error indicator from the most recent fetch attempt; rows
	// may still be present (stale) when it is set.
	Err error
}

// View applies the filter to the in-memory collection and returns the
// result. Filtering is pure and deterministic, and preserves the relative
// order of the source collection (stable filter, no implied sort).
func (c *Controller) View(f Filter) Snapshot {
	c.mu.Lock()
	rows := c.rows
	loaded := c.loaded
	lastErr := c.lastErr
	c.mu.Unlock()

	return Snapshot{Rows: c.apply(rows, f), Loaded: loaded, Err: lastErr}
}

func (c *Controller) apply(rows []Row, f Filter) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !c.matches(row, f) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (c *Controller) matches(row Row, f Filter) bool {
	if !c.matchesQuery(row, f.Query) {
		return false
	}
	for field, want := range f.Categories {
		if want == "" {
			continue
		}
		if !strings.EqualFold(stringify(row[field]), want) {
			return false
		}
	}
	if c.opts.TabField != "" && f.Tab != "" && f.Tab != c.opts.TabAll {
		if !strings.EqualFold(stringify(row[c.opts.TabField]), f.Tab) {
			return false
		}
	}
	return true
}

func (c *Controller) matchesQuery(row Row, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, expr := range c.opts.SearchFields {
		val, err := jmespath.Search(expr, row)
		if err != nil || val == nil {
			continue
		}
		if strings.Contains(strings.ToLower(stringify(val)), query) {
			return true
		}
	}
	return false
}

// stringify renders a primitive row value for matching. Floats that are
// whole numbers print without the decimal point (JSON numbers decode as
// float64).
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
