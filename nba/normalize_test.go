package nba

import (
	"errors"
	"reflect"
	"testing"
)

var wantColumns = []string{"PLAYER_ID", "PLAYER", "PTS"}
var wantRows = [][]any{
	{201939.0, "Stephen Curry", 26.4},
	{1628973.0, "Jalen Brunson", nil},
}

const setA = `{"name":"A","headers":["X"],"rowSet":[[1]]}`
const setB = `{"name":"B","headers":["PLAYER_ID","PLAYER","PTS"],"rowSet":[[201939,"Stephen Curry",26.4],[1628973,"Jalen Brunson",null]]}`

func TestResultSetShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ndx     int
	}{
		{"plural indexed first", `{"resultSets":[` + setB + `,` + setA + `]}`, 0},
		{"plural indexed second", `{"resultSets":[` + setA + `,` + setB + `]}`, 1},
		{"singular indexed", `{"resultSet":[` + setA + `,` + setB + `]}`, 1},
		{"singular direct", `{"resultSet":` + setB + `}`, 0},
		{"singular direct ignores index", `{"resultSet":` + setB + `}`, 7},
		{"plural object falls through to singular", `{"resultSets":{"Meta":{}},"resultSet":` + setB + `}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ResultSet(Payload(tt.payload), tt.ndx)
			if err != nil {
				t.Fatalf("ResultSet: %v", err)
			}
			if !reflect.DeepEqual(table.Columns, wantColumns) {
				t.Errorf("columns = %v, want %v", table.Columns, wantColumns)
			}
			if !reflect.DeepEqual(table.Rows, wantRows) {
				t.Errorf("rows = %v, want %v", table.Rows, wantRows)
			}
			for i, r := range table.Rows {
				if len(r) != len(table.Columns) {
					t.Errorf("row %d width %d != %d columns", i, len(r), len(table.Columns))
				}
			}
		})
	}
}

func TestResultSetPluralWinsOverSingular(t *testing.T) {
	payload := `{"resultSets":[` + setB + `],"resultSet":` + setA + `}`
	table, err := ResultSet(Payload(payload), 0)
	if err != nil {
		t.Fatalf("ResultSet: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Errorf("expected the plural set to be used, got columns %v", table.Columns)
	}
}

func TestResultSetEmptyRows(t *testing.T) {
	table, err := ResultSet(Payload(`{"resultSets":[{"headers":["A","B"],"rowSet":[]}]}`), 0)
	if err != nil {
		t.Fatalf("ResultSet: %v", err)
	}
	if table.Len() != 0 || len(table.Columns) != 2 {
		t.Errorf("unexpected table %+v", table)
	}
	if table.Rows == nil {
		t.Error("expected empty, non-nil rows")
	}
}

func TestResultSetShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ndx     int
	}{
		{"plural index out of range", `{"resultSets":[` + setA + `]}`, 1},
		{"singular index out of range", `{"resultSet":[` + setA + `]}`, 3},
		{"negative index", `{"resultSets":[` + setA + `]}`, -1},
		{"no known key", `{"data":[]}`, 0},
		{"set missing rowSet", `{"resultSet":{"headers":["A"]}}`, 0},
		{"set missing headers", `{"resultSets":[{"rowSet":[[1]]}]}`, 0},
		{"ragged row", `{"resultSets":[{"headers":["A","B"],"rowSet":[[1,2],[3]]}]}`, 0},
		{"duplicate header", `{"resultSets":[{"headers":["A","A"],"rowSet":[[1,2]]}]}`, 0},
		{"row not a list", `{"resultSets":[{"headers":["A"],"rowSet":[{"A":1}]}]}`, 0},
		{"header not a string", `{"resultSets":[{"headers":[{"columnNames":["A"]}],"rowSet":[]}]}`, 0},
		{"top level array", `[1,2,3]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResultSet(Payload(tt.payload), tt.ndx)
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected *ShapeError, got %v", err)
			}
			if shapeErr.Index != tt.ndx {
				t.Errorf("Index = %d, want %d", shapeErr.Index, tt.ndx)
			}
		})
	}
}
