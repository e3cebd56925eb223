package baseclass

import (
	"sort"
	"strings"

	"github.com/reoring/baseclass/internal/engine"
)

// Metadata is a read-only mapping of auxiliary per-field data.
type Metadata struct {
	entries map[string]any
}

// every field declared without metadata points here
var emptyMetadata = &Metadata{}

// EmptyMetadata returns the shared empty Metadata.
func EmptyMetadata() *Metadata { return emptyMetadata }

// NewMetadata copies m into a read-only Metadata. An empty or nil map yields
// the shared empty instance.
func NewMetadata(m map[string]any) *Metadata {
	if len(m) == 0 {
		return emptyMetadata
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return &Metadata{entries: cp}
}

// Get returns the value stored under key.
func (md *Metadata) Get(key string) (any, bool) {
	if md == nil {
		return nil, false
	}
	v, ok := md.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (md *Metadata) Len() int {
	if md == nil {
		return 0
	}
	return len(md.entries)
}

// Keys returns the keys in ascending order.
func (md *Metadata) Keys() []string {
	if md == nil {
		return nil
	}
	keys := make([]string, 0, len(md.entries))
	for k := range md.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for each entry in key order until fn returns false.
func (md *Metadata) Range(fn func(key string, value any) bool) {
	for _, k := range md.Keys() {
		if !fn(k, md.entries[k]) {
			return
		}
	}
}

// ToMap returns a copy of the entries.
func (md *Metadata) ToMap() map[string]any {
	out := make(map[string]any, md.Len())
	if md == nil {
		return out
	}
	for k, v := range md.entries {
		out[k] = v
	}
	return out
}

func (md *Metadata) String() string {
	b := &strings.Builder{}
	b.WriteByte('{')
	first := true
	md.Range(func(k string, v any) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(engine.Debug(k))
		b.WriteString(": ")
		b.WriteString(engine.Debug(v))
		return true
	})
	b.WriteByte('}')
	return b.String()
}
