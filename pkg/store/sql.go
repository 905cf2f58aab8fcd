package store

import (
	"database/sql"
	"fmt"
	"strings"

	"openf1telemetry/pkg/model"
)

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnType picks the SQLite affinity from the first non-null value of a column.
func columnType(values []model.Value) string {
	for _, v := range values {
		switch v.Kind() {
		case model.KindNull:
			continue
		case model.KindInt, model.KindBool:
			return "INTEGER"
		case model.KindFloat:
			return "REAL"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

func buildCreateTable(table string, columns, types []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), types[i])
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s);`, quoteIdent(table), strings.Join(defs, ", "))
}

func buildAddColumn(table, column, typ string) string {
	return fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s;`, quoteIdent(table), quoteIdent(column), typ)
}

func buildTableInfo(table string) (string, func(*sql.Rows) (map[string]bool, error)) {
	return fmt.Sprintf(`PRAGMA table_info(%s);`, quoteIdent(table)), processTableInfoRows
}

func processTableInfoRows(rows *sql.Rows) (map[string]bool, error) {
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return existing, err
		}
		existing[name] = true
	}
	return existing, rows.Err()
}

func buildInsert(table string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		marks[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

func buildSelectAll(table string) (string, func(*sql.Rows) (*model.ResultSet, error)) {
	return fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(table)), processSelectAllRows
}

func processSelectAllRows(rows *sql.Rows) (*model.ResultSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := model.NewResultSet()
	for rows.Next() {
		cells := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := model.Record{}
		for i, c := range columns {
			rec[c] = fromSQL(cells[i])
		}
		rs.Append(columns, rec)
	}
	return rs, rows.Err()
}

// toSQL maps a Value to a driver argument; booleans are stored as 0/1.
func toSQL(v model.Value) any {
	switch v.Kind() {
	case model.KindBool:
		if b, _ := v.AsBool(); b {
			return 1
		}
		return 0
	case model.KindJSON:
		return v.String()
	}
	return v.Interface()
}

func fromSQL(cell any) model.Value {
	switch c := cell.(type) {
	case nil:
		return model.Null()
	case int64:
		return model.Int64(c)
	case float64:
		return model.Float(c)
	case bool:
		return model.Bool(c)
	case []byte:
		return model.String(string(c))
	case string:
		return model.String(c)
	}
	return model.String(fmt.Sprint(cell))
}
