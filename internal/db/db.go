// Package db persists parsed GRD files into a SQLite database so imported
// measurement runs can be queried without re-reading the exports.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/monitoring"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if necessary) the SQLite database at path and
// ensures the baseline schema exists.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS grd_files (
			file_id           INTEGER PRIMARY KEY AUTOINCREMENT,
			import_id         TEXT NOT NULL,
			path              TEXT NOT NULL,
			sample_name       TEXT,
			sample_date       TEXT,
			specific_info     TEXT,
			user_info         TEXT,
			comment           TEXT,
			imported_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS grd_channels (
			file_id           INTEGER NOT NULL,
			position          INTEGER NOT NULL,
			name              TEXT NOT NULL,
			unit              TEXT,
			PRIMARY KEY (file_id, position),
			FOREIGN KEY(file_id) REFERENCES grd_files(file_id)
		);
		CREATE TABLE IF NOT EXISTS grd_curves (
			curve_id          INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id           INTEGER NOT NULL,
			curve_number      INTEGER NOT NULL,
			start_date        TEXT,
			legend            TEXT,
			duration          DOUBLE,
			declared_points   BIGINT,
			row_count         BIGINT,
			FOREIGN KEY(file_id) REFERENCES grd_files(file_id)
		);
		CREATE TABLE IF NOT EXISTS grd_samples (
			curve_id          INTEGER NOT NULL,
			row_idx           BIGINT NOT NULL,
			col_idx           INTEGER NOT NULL,
			value             DOUBLE NOT NULL,
			PRIMARY KEY (curve_id, row_idx, col_idx),
			FOREIGN KEY(curve_id) REFERENCES grd_curves(curve_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// FileRecord is one imported GRD file.
type FileRecord struct {
	FileID       int64
	ImportID     string
	Path         string
	SampleName   string
	Date         string
	SpecificInfo string
	UserInfo     string
	Comment      string
	ImportedAt   time.Time
}

// CurveRecord is one stored curve of an imported file.
type CurveRecord struct {
	CurveID        int64
	FileID         int64
	CurveNumber    int
	StartDate      string
	Legend         string
	Duration       float64
	DeclaredPoints int
	RowCount       int
}

// RecordGraph stores a parsed file and all of its curves and samples in
// one transaction. Each call is tagged with a fresh import id so repeated
// imports of the same path stay distinguishable.
func (db *DB) RecordGraph(path string, g *grd.GraphData) (int64, error) {
	importID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO grd_files (import_id, path, sample_name, sample_date, specific_info, user_info, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		importID, path, g.SampleName, g.Date, g.SpecificInfo, g.UserInfo,
		strings.Join(g.Comment, "\n"),
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for pos, name := range g.Names {
		if _, err := tx.Exec(
			`INSERT INTO grd_channels (file_id, position, name, unit) VALUES (?, ?, ?, ?)`,
			fileID, pos, name, g.Units[pos],
		); err != nil {
			return 0, fmt.Errorf("insert channel %q: %w", name, err)
		}
	}

	for _, c := range g.Curves {
		res, err := tx.Exec(
			`INSERT INTO grd_curves (file_id, curve_number, start_date, legend, duration, declared_points, row_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			fileID, c.Number, c.StartDate, c.Key, c.Duration, c.Points, c.Len(),
		)
		if err != nil {
			return 0, fmt.Errorf("insert curve %d: %w", c.Number, err)
		}
		curveID, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		for rowIdx, row := range c.Data {
			for colIdx, v := range row {
				if _, err := tx.Exec(
					`INSERT INTO grd_samples (curve_id, row_idx, col_idx, value) VALUES (?, ?, ?, ?)`,
					curveID, rowIdx, colIdx, v,
				); err != nil {
					return 0, fmt.Errorf("insert sample (%d,%d) of curve %d: %w", rowIdx, colIdx, c.Number, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	monitoring.Logf("imported %s: %d channels, %d curves (import %s)",
		path, len(g.Names), len(g.Curves), importID)
	return fileID, nil
}

// Files returns all imported files, oldest first.
func (db *DB) Files() ([]FileRecord, error) {
	rows, err := db.Query(
		`SELECT file_id, import_id, path, sample_name, sample_date, specific_info, user_info, comment, imported_at
		 FROM grd_files ORDER BY file_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.FileID, &f.ImportID, &f.Path, &f.SampleName, &f.Date,
			&f.SpecificInfo, &f.UserInfo, &f.Comment, &f.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CurvesForFile returns the stored curves of one imported file in file
// order.
func (db *DB) CurvesForFile(fileID int64) ([]CurveRecord, error) {
	rows, err := db.Query(
		`SELECT curve_id, file_id, curve_number, start_date, legend, duration, declared_points, row_count
		 FROM grd_curves WHERE file_id = ? ORDER BY curve_id`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CurveRecord
	for rows.Next() {
		var c CurveRecord
		if err := rows.Scan(&c.CurveID, &c.FileID, &c.CurveNumber, &c.StartDate,
			&c.Legend, &c.Duration, &c.DeclaredPoints, &c.RowCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ChannelData returns the stored column of the named channel for the first
// curve with the given number in the file, in original row order. Lookup
// misses wrap the same sentinels as the in-memory model.
func (db *DB) ChannelData(fileID int64, curveNumber int, channel string) ([]float64, error) {
	var col int
	err := db.QueryRow(
		`SELECT position FROM grd_channels WHERE file_id = ? AND name = ?`,
		fileID, channel).Scan(&col)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %d: channel %q: %w", fileID, channel, grd.ErrChannelNotFound)
	}
	if err != nil {
		return nil, err
	}

	var curveID int64
	err = db.QueryRow(
		`SELECT curve_id FROM grd_curves WHERE file_id = ? AND curve_number = ? ORDER BY curve_id LIMIT 1`,
		fileID, curveNumber).Scan(&curveID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %d: curve %d: %w", fileID, curveNumber, grd.ErrCurveNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT value FROM grd_samples WHERE curve_id = ? AND col_idx = ? ORDER BY row_idx`,
		curveID, col)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
