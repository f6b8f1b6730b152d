/*
 * sqlite.go, part of gopops.
 *
 * Copyright 2024 The gopops authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package report

import (
	"context"
	"database/sql"
	"sync"

	_ "modernc.org/sqlite"
)

//SQLiteStore keeps frames in a SQLite database.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return Error{"sqlite path is required", []string{"SQLiteStore.Init"}, true}
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return wrap(err, "SQLiteStore.Init")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return wrap(err, "SQLiteStore.Init")
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return wrap(err, "SQLiteStore.Init")
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveFrame(ctx context.Context, f Frame) error {
	db, err := s.getDB()
	if err != nil {
		return wrap(err, "SQLiteStore.SaveFrame")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(err, "SQLiteStore.SaveFrame")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO frames (run_id, frame, phobic, philic, sasa, buried, sfe_type, sfe_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, frame) DO UPDATE SET
			phobic = excluded.phobic,
			philic = excluded.philic,
			sasa = excluded.sasa,
			buried = excluded.buried,
			sfe_type = excluded.sfe_type,
			sfe_group = excluded.sfe_group
	`, f.Run, f.Index, f.Phobic, f.Philic, f.SASA, f.Buried, f.SFEType, f.SFEGroup)
	if err != nil {
		return wrap(err, "SQLiteStore.SaveFrame")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM residues WHERE run_id = ? AND frame = ?`, f.Run, f.Index); err != nil {
		return wrap(err, "SQLiteStore.SaveFrame")
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO residues (run_id, frame, position, chain, number, icode, name, phobic, philic, sasa, buried)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return wrap(err, "SQLiteStore.SaveFrame")
	}
	defer stmt.Close()
	for i, r := range f.Residues {
		_, err = stmt.ExecContext(ctx, f.Run, f.Index, i, r.Chain, r.Number, r.ICode, r.Name, r.Phobic, r.Philic, r.SASA, r.Buried)
		if err != nil {
			return wrap(err, "SQLiteStore.SaveFrame")
		}
	}
	return wrap(tx.Commit(), "SQLiteStore.SaveFrame")
}

func (s *SQLiteStore) Frames(ctx context.Context, run string) ([]Frame, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, wrap(err, "SQLiteStore.Frames")
	}
	rows, err := db.QueryContext(ctx, `
		SELECT frame, phobic, philic, sasa, buried, sfe_type, sfe_group
		FROM frames WHERE run_id = ? ORDER BY frame
	`, run)
	if err != nil {
		return nil, wrap(err, "SQLiteStore.Frames")
	}
	var ret []Frame
	for rows.Next() {
		f := Frame{Run: run}
		if err := rows.Scan(&f.Index, &f.Phobic, &f.Philic, &f.SASA, &f.Buried, &f.SFEType, &f.SFEGroup); err != nil {
			rows.Close()
			return nil, wrap(err, "SQLiteStore.Frames")
		}
		ret = append(ret, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, wrap(err, "SQLiteStore.Frames")
	}
	rows.Close()
	for i := range ret {
		if ret[i].Residues, err = residues(ctx, db, run, ret[i].Index); err != nil {
			return nil, wrap(err, "SQLiteStore.Frames")
		}
	}
	return ret, nil
}

func residues(ctx context.Context, db *sql.DB, run string, frame int) ([]ResidueValues, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT chain, number, icode, name, phobic, philic, sasa, buried
		FROM residues WHERE run_id = ? AND frame = ? ORDER BY position
	`, run, frame)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []ResidueValues
	for rows.Next() {
		var r ResidueValues
		if err := rows.Scan(&r.Chain, &r.Number, &r.ICode, &r.Name, &r.Phobic, &r.Philic, &r.SASA, &r.Buried); err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, Error{"Store is not initialized", []string{"SQLiteStore.getDB"}, true}
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			phobic REAL NOT NULL,
			philic REAL NOT NULL,
			sasa REAL NOT NULL,
			buried REAL NOT NULL,
			sfe_type REAL NOT NULL,
			sfe_group REAL NOT NULL,
			PRIMARY KEY (run_id, frame)
		);
		CREATE TABLE IF NOT EXISTS residues (
			run_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			position INTEGER NOT NULL,
			chain TEXT NOT NULL,
			number INTEGER NOT NULL,
			icode TEXT NOT NULL,
			name TEXT NOT NULL,
			phobic REAL NOT NULL,
			philic REAL NOT NULL,
			sasa REAL NOT NULL,
			buried REAL NOT NULL,
			PRIMARY KEY (run_id, frame, position)
		);
	`)
	return err
}
