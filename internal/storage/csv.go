package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"todo_api/internal/domain"

	"github.com/google/uuid"
)

// CSVFile stores the collection as a header row followed by one row per
// task. Columns are addressed by header name, so files with reordered or
// missing columns still load.
type CSVFile struct {
	path string
}

// NewCSVFile returns a CSV backend for path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Path returns the file the backend reads and writes.
func (s *CSVFile) Path() string {
	return s.path
}

func (s *CSVFile) Read(_ context.Context) ([]domain.Task, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, domain.ReadFailure("malformed CSV file", err)
	}

	tasks := []domain.Task{}
	if len(records) == 0 {
		return tasks, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	for n, record := range records[1:] {
		task, err := decodeCSVRow(columns, record)
		if err != nil {
			return nil, domain.ReadFailure("malformed CSV file", fmt.Errorf("row %d: %w", n+2, err))
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *CSVFile) Write(_ context.Context, tasks []domain.Task) error {
	return writeFile(s.path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(domain.TaskFields); err != nil {
			return err
		}
		for _, t := range tasks {
			if err := cw.Write(encodeCSVRow(t)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func encodeCSVRow(t domain.Task) []string {
	row := make([]string, 0, len(domain.TaskFields))
	for _, field := range domain.TaskFields {
		switch field {
		case domain.FieldID:
			row = append(row, t.ID.String())
		case domain.FieldUserID:
			row = append(row, t.UserID.String())
		case domain.FieldTitle:
			row = append(row, t.Title)
		case domain.FieldDescription:
			row = append(row, derefString(t.Description))
		case domain.FieldDone:
			row = append(row, strconv.FormatBool(t.Done))
		case domain.FieldDeadline:
			row = append(row, formatTime(t.Deadline))
		case domain.FieldProjectID:
			if t.ProjectID == nil {
				row = append(row, "")
			} else {
				row = append(row, t.ProjectID.String())
			}
		case domain.FieldCreatedAt:
			row = append(row, formatTime(&t.CreatedAt))
		case domain.FieldDeletedAt:
			row = append(row, formatTime(t.DeletedAt))
		}
	}
	return row
}

func decodeCSVRow(columns map[string]int, record []string) (domain.Task, error) {
	var t domain.Task
	cell := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var err error
	if t.ID, err = parseUUID(cell(domain.FieldID)); err != nil {
		return t, fmt.Errorf("id: %w", err)
	}
	if t.UserID, err = parseUUID(cell(domain.FieldUserID)); err != nil {
		return t, fmt.Errorf("user_id: %w", err)
	}
	t.Title = cell(domain.FieldTitle)
	if v := cell(domain.FieldDescription); v != "" {
		t.Description = &v
	}
	if t.Done, err = parseDone(cell(domain.FieldDone)); err != nil {
		return t, err
	}
	if t.Deadline, err = parseTime(cell(domain.FieldDeadline)); err != nil {
		return t, fmt.Errorf("deadline: %w", err)
	}
	if v := cell(domain.FieldProjectID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return t, fmt.Errorf("project_id: %w", err)
		}
		t.ProjectID = &id
	}
	created, err := parseTime(cell(domain.FieldCreatedAt))
	if err != nil {
		return t, fmt.Errorf("created_at: %w", err)
	}
	if created != nil {
		t.CreatedAt = *created
	}
	if t.DeletedAt, err = parseTime(cell(domain.FieldDeletedAt)); err != nil {
		return t, fmt.Errorf("deleted_at: %w", err)
	}
	return t, nil
}

// parseDone canonicalizes the textual done column into a bool.
func parseDone(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("done: %w: %q", errInvalidBool, v)
	}
}

var errInvalidBool = errors.New("expected true or false")

func parseUUID(v string) (uuid.UUID, error) {
	if v == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(v)
}

func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
