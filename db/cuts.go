package db

import (
	"database/sql"
	"fmt"
	"time"
)

// NewCut describes a cut that is about to start.
type NewCut struct {
	InputPath    string
	StartSeconds int
	EndSeconds   int
	OutputPath   string
	Engine       string
}

// InsertCut records a running cut and returns its ID.
func InsertCut(db *sql.DB, c NewCut, startedAt time.Time) (int64, error) {
	result, err := db.Exec(InsertCutSQL, c.InputPath, c.StartSeconds, c.EndSeconds, c.OutputPath, c.Engine, startedAt)
	if err != nil {
		return 0, fmt.Errorf("insert cut: %w", err)
	}
	return result.LastInsertId()
}

// MarkCutComplete updates a cuts row to complete status with the given finish time and filesize.
func MarkCutComplete(db *sql.DB, cutID int64, finishedAt time.Time, filesize int64) error {
	_, err := db.Exec(MarkCutCompleteSQL, finishedAt, filesize, cutID)
	if err != nil {
		return fmt.Errorf("mark cut complete: %w", err)
	}
	return nil
}

// MarkCutError updates a cuts row to error status with the given error time and log message.
func MarkCutError(db *sql.DB, cutID int64, errorAt time.Time, logMsg string) error {
	_, err := db.Exec(MarkCutErrorSQL, errorAt, logMsg, cutID)
	if err != nil {
		return fmt.Errorf("mark cut error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCut(row rowScanner) (*Cut, error) {
	var c Cut
	err := row.Scan(&c.ID, &c.InputPath, &c.StartSeconds, &c.EndSeconds, &c.OutputPath, &c.Engine, &c.Status, &c.StartedAt, &c.FinishedAt, &c.ErrorAt, &c.Filesize, &c.Log)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SelectCutByID returns a single cuts row by ID.
func SelectCutByID(db *sql.DB, id int64) (*Cut, error) {
	return scanCut(db.QueryRow(SelectCutByIDSQL, id))
}

// SelectRecentCuts returns up to limit cuts, newest first.
func SelectRecentCuts(db *sql.DB, limit int) ([]Cut, error) {
	rows, err := db.Query(SelectRecentCutsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent cuts: %w", err)
	}
	defer rows.Close()

	var cuts []Cut
	for rows.Next() {
		c, err := scanCut(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cut: %w", err)
		}
		cuts = append(cuts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cuts: %w", err)
	}
	return cuts, nil
}
