package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder under root for one run's records.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSessionRecords(records []SessionRecord) error {
	header := []string{"id", "session_id", "game", "status", "winner", "reason", "moves", "rejected", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.SessionID,
			record.Game,
			record.Status.String(),
			record.Winner,
			record.Reason,
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.Rejected),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.WriteTable("sessions.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"session", "step", "move", "accepted", "status", "attempts_remaining", "view"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		attempts := strconv.Itoa(record.Attempts)
		if record.Unbounded || !record.Accepted {
			attempts = ""
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Session),
			strconv.Itoa(record.Step),
			record.Move,
			strconv.FormatBool(record.Accepted),
			record.Status.String(),
			attempts,
			record.View,
		})
	}
	return w.WriteTable("moves.csv", header, rows)
}

// WriteTable stores rows under header as name in the run directory.
func (w *Writer) WriteTable(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
