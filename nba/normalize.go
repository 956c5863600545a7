package nba

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Payload is a response body that has already been checked to be valid JSON.
type Payload []byte

type shape string

const (
	pluralIndexed   shape = "plural indexed"
	singularIndexed shape = "singular indexed"
	singularDirect  shape = "singular direct"
)

// A shapeMatcher either locates the result set for ndx, declines (ok == false)
// so the next matcher gets a turn, or fails outright.
type shapeMatcher struct {
	shape shape
	match func(root gjson.Result, ndx int) (set gjson.Result, ok bool, err error)
}

// Order matters: stats.nba.com mostly answers with "resultSets", a handful of
// endpoints use "resultSet" as a list, and single-set endpoints such as
// leagueleaders put the set itself under "resultSet".
var shapeMatchers = []shapeMatcher{
	{shape: pluralIndexed, match: indexed("resultSets")},
	{shape: singularIndexed, match: indexed("resultSet")},
	{shape: singularDirect, match: direct("resultSet")},
}

func indexed(key string) func(gjson.Result, int) (gjson.Result, bool, error) {
	return func(root gjson.Result, ndx int) (gjson.Result, bool, error) {
		sets := root.Get(key)
		if !sets.IsArray() {
			return gjson.Result{}, false, nil
		}
		elems := sets.Array()
		if ndx >= len(elems) {
			return gjson.Result{}, false, &ShapeError{
				Index:  ndx,
				Reason: fmt.Sprintf("%q holds only %d result sets", key, len(elems)),
			}
		}
		set := elems[ndx]
		return set, isResultSet(set), nil
	}
}

func direct(key string) func(gjson.Result, int) (gjson.Result, bool, error) {
	return func(root gjson.Result, _ int) (gjson.Result, bool, error) {
		set := root.Get(key)
		return set, isResultSet(set), nil
	}
}

func isResultSet(set gjson.Result) bool {
	return set.IsObject() && set.Get("headers").Exists() && set.Get("rowSet").Exists()
}

// ResultSet extracts the table at ndx from any of the payload shapes the stats
// API is known to use.
func ResultSet(p Payload, ndx int) (*Table, error) {
	if ndx < 0 {
		return nil, &ShapeError{Index: ndx, Reason: "negative index"}
	}
	root := gjson.ParseBytes(p)
	for _, m := range shapeMatchers {
		set, ok, err := m.match(root, ndx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return tableFromSet(set, ndx, m.shape)
	}
	return nil, &ShapeError{Index: ndx, Reason: "payload has no resultSets or resultSet with headers and rowSet"}
}

func tableFromSet(set gjson.Result, ndx int, s shape) (*Table, error) {
	fail := func(format string, args ...any) error {
		return &ShapeError{Index: ndx, Reason: fmt.Sprintf("%s: ", s) + fmt.Sprintf(format, args...)}
	}

	headers := set.Get("headers")
	if !headers.IsArray() {
		return nil, fail("headers is not a list")
	}
	columns := []string{}
	for i, h := range headers.Array() {
		if h.Type != gjson.String {
			return nil, fail("header %d is not a string", i)
		}
		columns = append(columns, h.String())
	}

	rowSet := set.Get("rowSet")
	if !rowSet.IsArray() {
		return nil, fail("rowSet is not a list")
	}
	rows := [][]any{}
	for i, raw := range rowSet.Array() {
		if !raw.IsArray() {
			return nil, fail("row %d is not a list", i)
		}
		cells := raw.Array()
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c.Value()
		}
		rows = append(rows, row)
	}

	table, err := NewTable(columns, rows)
	if err != nil {
		return nil, fail("%v", err)
	}
	return table, nil
}
