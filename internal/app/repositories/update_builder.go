package repositories

import (
	"fmt"
	"reflect"
	"strings"
)

// setClause pairs a column name with an optional (pointer) value.
type setClause struct {
	col string
	val any
}

// buildSet renders a SET fragment from the non-nil clauses, in order, and
// returns the matching positional arguments. An empty fragment means nothing
// to update.
func buildSet(clauses []setClause) (string, []any) {
	var parts []string
	var args []any
	for _, c := range clauses {
		if c.val == nil {
			continue
		}
		v := reflect.ValueOf(c.val)
		if v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		args = append(args, c.val)
		parts = append(parts, fmt.Sprintf("%s = $%d", c.col, len(args)))
	}
	return strings.Join(parts, ", "), args
}
