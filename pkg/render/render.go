// Package render writes result sets for people and spreadsheets.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"openf1telemetry/pkg/caster"
	"openf1telemetry/pkg/model"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatHTML, FormatJSON}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

type Options struct {
	// Title is printed above table output only.
	Title string
	// Columns restricts and orders the output; empty means every column.
	Columns []string
	// Limit caps the number of rows written; zero means no limit.
	Limit int
	// LapTimes prints lap and sector durations as mm:ss.mmm.
	LapTimes bool
}

// Write renders rs to w. Cells of fields a row lacks are left blank.
func Write(w io.Writer, rs *model.ResultSet, f Format, opts Options) error {
	if f == FormatJSON {
		return writeJSON(w, rs, opts)
	}

	columns := selectColumns(rs, opts.Columns)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if opts.Title != "" && f == FormatTable {
		t.SetTitle("%s", opts.Title)
	}

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	n := rowCount(rs, opts.Limit)
	for i := 0; i < n; i++ {
		rec := rs.Row(i)
		row := make(table.Row, len(columns))
		for j, c := range columns {
			row[j] = cell(c, rec.Get(c), opts.LapTimes)
		}
		t.AppendRow(row)
	}
	if n < rs.Len() {
		t.SetCaption("%d of %d rows", n, rs.Len())
	}

	switch f {
	case FormatTable:
		t.Render()
	case FormatCSV:
		t.RenderCSV()
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatHTML:
		t.RenderHTML()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	return nil
}

// String renders rs as a rounded table.
func String(rs *model.ResultSet, opts Options) string {
	var b strings.Builder
	_ = Write(&b, rs, FormatTable, opts)
	return b.String()
}

func writeJSON(w io.Writer, rs *model.ResultSet, opts Options) error {
	out := rs
	if len(opts.Columns) > 0 || rowCount(rs, opts.Limit) < rs.Len() {
		out = project(rs, selectColumns(rs, opts.Columns), rowCount(rs, opts.Limit))
	}
	text, err := caster.JSONCaster[*model.ResultSet]{Indent: "  "}.To(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func selectColumns(rs *model.ResultSet, wanted []string) []string {
	if len(wanted) == 0 {
		return rs.Columns()
	}
	columns := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if rs.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	return columns
}

func rowCount(rs *model.ResultSet, limit int) int {
	if limit > 0 && limit < rs.Len() {
		return limit
	}
	return rs.Len()
}

func project(rs *model.ResultSet, columns []string, n int) *model.ResultSet {
	out := model.NewResultSet()
	for i := 0; i < n; i++ {
		src := rs.Row(i)
		rec := model.Record{}
		fields := make([]string, 0, len(columns))
		for _, c := range columns {
			if src.Has(c) {
				rec[c] = src.Get(c)
				fields = append(fields, c)
			}
		}
		out.Append(fields, rec)
	}
	return out
}
