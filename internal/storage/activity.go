package storage

import (
	"fmt"
	"time"
)

// RecordActivity records a single activity event.
func (s *SQLiteStore) RecordActivity(event ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return nil // Graceful degradation
	}

	query := `
		INSERT INTO activity_log (action, tone, post_id, context_hash, timestamp, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		event.Action,
		event.Tone,
		event.PostID,
		event.ContextHash,
		event.Timestamp.UTC().Format(time.RFC3339),
		event.Rating,
	)

	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}

// GetActivityHistory retrieves events for a tone since a given time, newest first.
func (s *SQLiteStore) GetActivityHistory(tone string, since time.Time) ([]ActivityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return []ActivityEvent{}, nil
	}

	query := `
		SELECT action, tone, post_id, context_hash, timestamp, rating
		FROM activity_log
		WHERE tone = ? AND timestamp >= ?
		ORDER BY timestamp DESC
	`

	rows, err := s.db.Query(query, tone, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query activity history: %w", err)
	}
	defer rows.Close()

	var events []ActivityEvent
	for rows.Next() {
		var event ActivityEvent
		var timestampStr string

		if err := rows.Scan(
			&event.Action,
			&event.Tone,
			&event.PostID,
			&event.ContextHash,
			&timestampStr,
			&event.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}

		event.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// ClearActivity deletes every recorded event.
func (s *SQLiteStore) ClearActivity() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return nil
	}

	if _, err := s.db.Exec("DELETE FROM activity_log"); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

// Cleanup removes events older than the retention window.
func (s *SQLiteStore) Cleanup(retention time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return nil
	}

	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339)

	if _, err := s.db.Exec("DELETE FROM activity_log WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to cleanup activity_log: %w", err)
	}

	return nil
}
