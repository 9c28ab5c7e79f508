package extract

import (
	"sort"

	"github.com/samber/lo"
)

// Record is the extracted data of one page. Values are string, bool or
// map[string]string (identity groups keyed by heading).
type Record map[string]any

// Group returns the identity group stored under title, creating it when absent.
// An existing entry that is not a group is replaced, dropping its value.
func (r Record) Group(title string) map[string]string {
	if g, ok := r[title].(map[string]string); ok {
		return g
	}
	g := map[string]string{}
	r[title] = g
	return g
}

// String returns the string value under key.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// Bool returns the boolean value under key.
func (r Record) Bool(key string) (bool, bool) {
	v, ok := r[key].(bool)
	return v, ok
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := lo.Keys(map[string]any(r))
	sort.Strings(keys)
	return keys
}

// Merge combines records left to right; later records win on duplicate keys.
// Nil records are skipped.
func Merge(records ...Record) Record {
	maps := lo.FilterMap(records, func(r Record, _ int) (map[string]any, bool) {
		return r, r != nil
	})
	if len(maps) == 0 {
		return Record{}
	}
	return Record(lo.Assign(maps...))
}
