package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Record is one row as returned by the remote service.
type Record map[string]Value

// Get returns the field value, or Null when the record lacks the field.
func (r Record) Get(field string) Value {
	return r[field]
}

func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// ResultSet is the tabular form of one response: rows in response order and
// the union of their fields as columns, in first-seen order. A row that lacks
// a column reads as Null in that column; Record.Has tells both cases apart.
type ResultSet struct {
	columns []string
	index   map[string]int
	rows    []Record
}

func NewResultSet() *ResultSet {
	return &ResultSet{index: map[string]int{}}
}

// FromRecords builds a ResultSet from records whose field order is unknown;
// new fields of each record are added as columns in name order.
func FromRecords(records []Record) *ResultSet {
	rs := NewResultSet()
	for _, r := range records {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rs.Append(keys, r)
	}
	return rs
}

// Append adds a row. fields is the order in which the record's fields were
// observed and decides the position of previously unseen columns.
func (rs *ResultSet) Append(fields []string, r Record) {
	if rs.index == nil {
		rs.index = map[string]int{}
	}
	for _, f := range fields {
		if _, ok := rs.index[f]; !ok {
			rs.index[f] = len(rs.columns)
			rs.columns = append(rs.columns, f)
		}
	}
	rs.rows = append(rs.rows, r)
}

func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

func (rs *ResultSet) Columns() []string {
	return append([]string(nil), rs.columns...)
}

func (rs *ResultSet) HasColumn(name string) bool {
	_, ok := rs.index[name]
	return ok
}

func (rs *ResultSet) Row(i int) Record {
	return rs.rows[i]
}

func (rs *ResultSet) Rows() []Record {
	return rs.rows
}

// Value returns the cell at row i and the named column.
func (rs *ResultSet) Value(i int, column string) Value {
	return rs.rows[i].Get(column)
}

// Column returns every row's value for one column.
func (rs *ResultSet) Column(name string) []Value {
	out := make([]Value, len(rs.rows))
	for i, r := range rs.rows {
		out[i] = r.Get(name)
	}
	return out
}

// Cells returns the rows as a dense grid aligned with Columns.
func (rs *ResultSet) Cells() [][]Value {
	grid := make([][]Value, len(rs.rows))
	for i, r := range rs.rows {
		row := make([]Value, len(rs.columns))
		for j, c := range rs.columns {
			row[j] = r.Get(c)
		}
		grid[i] = row
	}
	return grid
}

// MarshalJSON writes the rows as a JSON array of objects. Fields keep column
// order and absent fields are left out.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, r := range rs.rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		first := true
		for _, c := range rs.columns {
			v, ok := r[c]
			if !ok {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			val, err := v.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(key)
			b.WriteByte(':')
			b.Write(val)
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}
