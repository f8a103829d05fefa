// Package alias implements AliasCounter (spec.md §3): a monotonic source of
// unique numeric suffixes for SQL-internal aliases (tokens_7, ip_7,
// mask_8, ...). A single Counter is shared across an entire top-level
// parse — including every nested function-template expansion — so that
// aliases never collide within one query (spec.md §3 "AliasCounter"
// invariant).
package alias

import "fmt"

// Counter hands out unique numeric suffixes. The zero value is ready to
// use and starts at 1 so aliases never carry a bare "_0" that could be
// mistaken for a sentinel.
type Counter struct {
	next int
}

// NewCounter returns a Counter ready for a fresh parse.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next returns the next unused integer suffix.
func (c *Counter) Next() int {
	c.next++
	return c.next - 1
}

// Name returns a fresh alias of the form "<prefix>_<n>", e.g. Name("ip")
// might return "ip_7". Two calls with the same prefix never collide;
// calls with different prefixes may happen to share a numeric suffix,
// which is fine — SQL aliases are compared as whole identifiers, not by
// their numeric tail alone.
func (c *Counter) Name(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, c.Next())
}
