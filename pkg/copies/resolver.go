package copies

import (
	"sort"
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// Resolver answers copy-count questions against a Table.
type Resolver struct {
	table Table
}

// NewResolver wraps table. A zero table resolves every lookup to 1.
func NewResolver(table Table) *Resolver {
	return &Resolver{table: table}
}

// Copies returns how many copies of the document titled title category
// needs. The result is always at least 1.
func (r *Resolver) Copies(title string, category document.Category) int {
	if category == document.CategoryAllDocuments {
		return 1
	}
	if r == nil {
		return 1
	}
	policy, ok := r.table.Categories[strings.TrimSpace(string(category))]
	if !ok {
		return atLeastOne(r.table.Default)
	}
	if count, ok := policy.Documents[strings.TrimSpace(title)]; ok {
		return atLeastOne(count)
	}
	return atLeastOne(policy.Default)
}

// Expand repeats every item by its copy count, keeping the input order.
func Expand[T any](r *Resolver, items []T, title func(T) string, category document.Category) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		n := r.Copies(title(item), category)
		for i := 0; i < n; i++ {
			out = append(out, item)
		}
	}
	return out
}

// Categories lists the configured category names.
func (r *Resolver) Categories() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.table.Categories))
	for name := range r.table.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
