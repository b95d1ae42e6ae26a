// seehuhn.de/go/whiteboard - an interactive freehand whiteboard engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	// SQLite driver, with the database engine compiled to WebAssembly.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	elements   TEXT    NOT NULL
)`

// SQLite is a snapshot store in an SQLite database file.
type SQLite struct {
	db  *sql.DB
	log hclog.Logger
}

var _ history.Store = (*SQLite)(nil)

// OpenSQLite opens or creates the database at dbPath.  Missing parent
// directories are created.
func OpenSQLite(ctx context.Context, dbPath string, logger hclog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create database directory")
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbPath)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	s := &SQLite{db: db, log: logger.Named("store")}
	s.log.Info("snapshot database opened", "path", dbPath)
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Append(ctx context.Context, elems []element.Element) (int64, error) {
	body, err := encode(elems)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (elements) VALUES (?)`, string(body))
	if err != nil {
		return 0, errors.Wrap(err, "insert snapshot")
	}
	key, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert snapshot")
	}
	return key, nil
}

func (s *SQLite) Get(ctx context.Context, key int64) ([]element.Element, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT elements FROM snapshots WHERE id = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(history.ErrNotFound, "key %d", key)
	} else if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %d", key)
	}
	return decode([]byte(body))
}

func (s *SQLite) Keys(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}
	defer rows.Close()

	var keys []int64
	for rows.Next() {
		var k int64
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "list snapshots")
		}
		keys = append(keys, k)
	}
	return keys, errors.Wrap(rows.Err(), "list snapshots")
}

func (s *SQLite) Delete(ctx context.Context, keys []int64) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id IN (`+marks+`)`, args...)
	return errors.Wrap(err, "delete snapshots")
}
