package headers

import (
	"iter"
	"strings"
)

// Entry is a header name as it was first seen, with all its values in order of appearance.
type Entry struct {
	Name   string
	Values []string
}

// Headers is an ordered multi-map. Lookups are case-insensitive, while the original case of
// the first occurrence is preserved. Repeated names append their values to the existing entry
// instead of overriding it.
type Headers struct {
	entries []Entry
	index   map[string]int
}

func New() *Headers {
	return NewPrealloc(0)
}

// NewPrealloc returns an instance with space for n distinct names.
func NewPrealloc(n int) *Headers {
	return &Headers{
		entries: make([]Entry, 0, n),
		index:   make(map[string]int, n),
	}
}

// FromPairs builds headers out of name-value pairs. Panics on odd number of arguments.
func FromPairs(pairs ...string) *Headers {
	if len(pairs)%2 != 0 {
		panic("headers: odd number of name-value arguments")
	}

	h := NewPrealloc(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		h.Add(pairs[i], pairs[i+1])
	}

	return h
}

// Add appends a value to the name's entry, creating it if it doesn't exist yet.
func (h *Headers) Add(name, value string) *Headers {
	key := strings.ToLower(name)
	if i, found := h.index[key]; found {
		h.entries[i].Values = append(h.entries[i].Values, value)
		return h
	}

	h.index[key] = len(h.entries)
	h.entries = append(h.entries, Entry{
		Name:   name,
		Values: []string{value},
	})

	return h
}

// Get returns the first value of the name and whether it was found at all.
func (h *Headers) Get(name string) (value string, found bool) {
	i, found := h.index[strings.ToLower(name)]
	if !found {
		return "", false
	}

	return h.entries[i].Values[0], true
}

// Value returns the first value of the name, or an empty string if there's none.
func (h *Headers) Value(name string) string {
	return h.ValueOr(name, "")
}

// ValueOr returns either the first value of the name or a fallback.
func (h *Headers) ValueOr(name, or string) string {
	value, found := h.Get(name)
	if !found {
		return or
	}

	return value
}

// Values returns all values of the name in order of appearance, or nil.
func (h *Headers) Values(name string) []string {
	i, found := h.index[strings.ToLower(name)]
	if !found {
		return nil
	}

	return h.entries[i].Values
}

// Has tells whether at least one value of the name is presented.
func (h *Headers) Has(name string) bool {
	_, found := h.index[strings.ToLower(name)]
	return found
}

// Names returns distinct names in their first-seen case and order.
func (h *Headers) Names() []string {
	names := make([]string, len(h.entries))
	for i, entry := range h.entries {
		names[i] = entry.Name
	}

	return names
}

// Iter iterates over entries in order.
func (h *Headers) Iter() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, entry := range h.entries {
			if !yield(entry.Name, entry.Values) {
				return
			}
		}
	}
}

// Pairs iterates over every single name-value pair, grouped by name.
func (h *Headers) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, entry := range h.entries {
			for _, value := range entry.Values {
				if !yield(entry.Name, value) {
					return
				}
			}
		}
	}
}

// Len returns the number of distinct names.
func (h *Headers) Len() int {
	return len(h.entries)
}

func (h *Headers) Empty() bool {
	return h.Len() == 0
}

// Expose exposes the underlying entries.
func (h *Headers) Expose() []Entry {
	return h.entries
}

// Clone creates a deep copy.
func (h *Headers) Clone() *Headers {
	clone := NewPrealloc(len(h.entries))
	for key, i := range h.index {
		clone.index[key] = i
	}

	for _, entry := range h.entries {
		clone.entries = append(clone.entries, Entry{
			Name:   entry.Name,
			Values: append([]string(nil), entry.Values...),
		})
	}

	return clone
}

// Clear drops all the entries, keeping the allocated space.
func (h *Headers) Clear() *Headers {
	h.entries = h.entries[:0]
	clear(h.index)
	return h
}
