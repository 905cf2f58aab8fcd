// Package store saves result sets into SQLite tables for offline analysis.
package store

import (
	"database/sql"
	"regexp"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"openf1telemetry/pkg/model"
)

const DefaultPath = "./openf1.db"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(path string) (*Manager, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "open database %s", path)
	}
	// one connection keeps ":memory:" databases shared between statements
	db.SetMaxOpenConns(1)
	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Save appends every row of rs to table, creating the table and any missing
// columns first. It returns the number of rows written.
func (m *Manager) Save(table string, rs *model.ResultSet) (int, error) {
	if !tableName.MatchString(table) {
		return 0, errors.Errorf("invalid table name %q", table)
	}
	columns := rs.Columns()
	if len(columns) == 0 {
		return 0, nil
	}
	types := make([]string, len(columns))
	for i, c := range columns {
		types[i] = columnType(rs.Column(c))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(buildCreateTable(table, columns, types)); err != nil {
		return 0, errors.Wrapf(err, "create table %s", table)
	}

	query, read := buildTableInfo(table)
	rows, err := tx.Query(query)
	if err != nil {
		return 0, errors.Wrapf(err, "inspect table %s", table)
	}
	existing, err := read(rows)
	if err != nil {
		return 0, errors.Wrapf(err, "inspect table %s", table)
	}
	for i, c := range columns {
		if existing[c] {
			continue
		}
		if _, err := tx.Exec(buildAddColumn(table, c, types[i])); err != nil {
			return 0, errors.Wrapf(err, "add column %s.%s", table, c)
		}
	}

	stmt, err := tx.Prepare(buildInsert(table, columns))
	if err != nil {
		return 0, errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for _, rec := range rs.Rows() {
		for i, c := range columns {
			args[i] = toSQL(rec.Get(c))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, errors.Wrapf(err, "insert into %s", table)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return rs.Len(), nil
}

// Load reads a whole table back. Absent values come back as Null fields.
func (m *Manager) Load(table string) (*model.ResultSet, error) {
	if !tableName.MatchString(table) {
		return nil, errors.Errorf("invalid table name %q", table)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	query, read := buildSelectAll(table)
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", table)
	}
	return read(rows)
}
