package console

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownColumn = errors.New("unknown column")

// Lookup finds a column by key or header, ignoring case.
func Lookup[T any](cols []Column[T], name string) (Column[T], error) {
	for _, c := range cols {
		if strings.EqualFold(c.Key, name) || strings.EqualFold(c.Header, name) {
			return c, nil
		}
	}
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return Column[T]{}, fmt.Errorf("%w %q (one of %s)", ErrUnknownColumn, name, strings.Join(keys, ", "))
}

// Sort returns a copy of rows ordered by the named column. Ties keep their
// loaded order. An empty name leaves the order as loaded.
func Sort[T any](rows []T, cols []Column[T], name string, desc bool) ([]T, error) {
	out := make([]T, len(rows))
	copy(out, rows)
	if name == "" {
		return out, nil
	}

	col, err := Lookup(cols, name)
	if err != nil {
		return nil, err
	}
	less := col.Less
	if less == nil {
		less = func(a, b T) bool {
			return strings.ToLower(col.Value(a)) < strings.ToLower(col.Value(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}
