package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/avrillon/encore/internal/db"
	"github.com/avrillon/encore/internal/timing"
)

// GetSequence loads the subject's sequence ordered by sequence_order.
// An unknown subject yields an empty sequence.
func (m *Manager) GetSequence(subjectID string) (*timing.Sequence, error) {
	rows, err := m.db.Query(`
		SELECT target_id, sequence_order, duration_ms, position_hint, loop_marker, recorded_at
		FROM timing_entries
		WHERE subject_id = ?
		ORDER BY sequence_order
	`, subjectID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var entries []timing.Entry
	for rows.Next() {
		var e timing.Entry
		var durationMs int64
		var hint sql.NullFloat64
		var recordedAt sql.NullInt64

		err := rows.Scan(&e.TargetID, &e.SequenceOrder, &durationMs, &hint, &e.LoopMarker, &recordedAt)
		if err != nil {
			return nil, storeErr(err)
		}

		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.PositionHint = dbutil.NullFloat64Value(hint)
		if recordedAt.Valid {
			e.RecordedAt = time.Unix(recordedAt.Int64, 0)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return timing.NewSequence(entries...), nil
}

// BatchSave replaces the subject's stored sequence wholesale.
func (m *Manager) BatchSave(subjectID string, entries []timing.Entry) error {
	err := dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM timing_entries WHERE subject_id = ?`, subjectID)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO timing_entries
				(subject_id, target_id, sequence_order, duration_ms, position_hint, loop_marker, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entries {
			var recordedAt any
			if !e.RecordedAt.IsZero() {
				recordedAt = e.RecordedAt.Unix()
			}
			_, err = stmt.Exec(subjectID, e.TargetID, i, e.Duration.Milliseconds(),
				e.PositionHint, e.LoopMarker, recordedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return storeErr(err)
}

// UpdateDuration overwrites the stored duration of one entry.
func (m *Manager) UpdateDuration(subjectID, targetID string, d time.Duration) (bool, error) {
	res, err := m.db.Exec(`
		UPDATE timing_entries SET duration_ms = ?
		WHERE subject_id = ? AND target_id = ?
	`, d.Milliseconds(), subjectID, targetID)
	if err != nil {
		return false, storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

// Clear removes the subject's sequence.
func (m *Manager) Clear(subjectID string) error {
	_, err := m.db.Exec(`DELETE FROM timing_entries WHERE subject_id = ?`, subjectID)
	return storeErr(err)
}

// TotalDuration returns the configured composite total for the subject.
func (m *Manager) TotalDuration(subjectID string) (time.Duration, bool, error) {
	var totalMs sql.NullInt64
	row := m.db.QueryRow(`
		SELECT total_duration_ms FROM subject_settings WHERE subject_id = ?
	`, subjectID)
	err := row.Scan(&totalMs)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storeErr(err)
	}
	if !totalMs.Valid {
		return 0, false, nil
	}
	return time.Duration(totalMs.Int64) * time.Millisecond, true, nil
}

// SetTotalDuration persists the configured composite total.
func (m *Manager) SetTotalDuration(subjectID string, d time.Duration) error {
	_, err := m.db.Exec(`
		INSERT INTO subject_settings (subject_id, total_duration_ms)
		VALUES (?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET
			total_duration_ms = excluded.total_duration_ms
	`, subjectID, d.Milliseconds())
	return storeErr(err)
}

// Subjects returns the ids of all subjects with stored entries,
// newest recording first. Used by tooling.
func (m *Manager) Subjects() ([]string, error) {
	rows, err := m.db.Query(`
		SELECT subject_id, MAX(COALESCE(recorded_at, 0)) AS latest
		FROM timing_entries
		GROUP BY subject_id
		ORDER BY latest DESC
	`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var id string
		var latest int64
		if err := rows.Scan(&id, &latest); err != nil {
			return nil, storeErr(err)
		}
		subjects = append(subjects, id)
	}
	return subjects, rows.Err()
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", timing.ErrStoreUnavailable, err)
}
