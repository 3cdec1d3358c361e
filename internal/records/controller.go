// internal/records/controller.go
//
// Controller owns the client-held collection for one list screen:
// fetch reconciliation, the page-size "has more" heuristic, the
// search filter view, and identifier-keyed patching. It holds no
// network code; the TUI fetches and only calls Apply on success, so a
// failed fetch never destroys pages already loaded.

package records

import (
	"strings"

	"propdesk/internal/crm"
)

// Controller holds the ordered collection for one screen.
type Controller[T crm.Record] struct {
	pageSize int
	page     int
	items    []T
	hasMore  bool
}

// NewController creates an empty controller with the given page size.
func NewController[T crm.Record](pageSize int) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Controller[T]{pageSize: pageSize, page: 1}
}

// PageSize returns the fetch page size.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// Page returns the last applied page number.
func (c *Controller[T]) Page() int { return c.page }

// NextPage returns the page number an end-of-list fetch should request.
func (c *Controller[T]) NextPage() int { return c.page + 1 }

// Apply reconciles one fetched page into the collection. A non-append
// apply replaces the collection wholesale; an append concatenates.
// Appending trusts backend ordering and may re-introduce duplicates if
// the backend is not strictly ordered — the heuristic nature of
// paginating without a cursor.
//
// "Has more" is set iff the page came back full. An exact-multiple
// total mispredicts one extra empty fetch; that fetch applies zero
// records and clears the flag.
func (c *Controller[T]) Apply(page int, batch []T, appendMode bool) {
	if appendMode {
		c.items = append(c.items, batch...)
	} else {
		c.items = append([]T(nil), batch...)
	}
	if page > 0 {
		c.page = page
	}
	c.hasMore = len(batch) == c.pageSize
}

// HasMore reports whether the last page came back full.
func (c *Controller[T]) HasMore() bool { return c.hasMore }

// Len returns the collection size.
func (c *Controller[T]) Len() int { return len(c.items) }

// Records returns the collection in fetch order. Callers must not
// mutate the returned slice.
func (c *Controller[T]) Records() []T { return c.items }

// Get returns the record with the given identifier.
func (c *Controller[T]) Get(id string) (T, bool) {
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// PatchByID replaces the record with the given identifier in place.
// Replacement, not deep merge: the caller supplies the full updated
// record. Returns false when the identifier is absent.
func (c *Controller[T]) PatchByID(id string, updated T) bool {
	for i, item := range c.items {
		if item.RecordID() == id {
			c.items[i] = updated
			return true
		}
	}
	return false
}

// Filter returns the subsequence whose display title contains the
// query case-insensitively, preserving relative order. An empty query
// returns the full collection. The collection is never mutated.
func (c *Controller[T]) Filter(query string) []T {
	if query == "" {
		return c.items
	}
	needle := strings.ToLower(query)
	var view []T
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.DisplayTitle()), needle) {
			view = append(view, item)
		}
	}
	return view
}
