package storage

import (
	"context"
	"encoding/json"
	"io"

	"todo_api/internal/domain"
)

// JSONFile stores the collection as a JSON array of task objects.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSON backend for path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file the backend reads and writes.
func (s *JSONFile) Path() string {
	return s.path
}

func (s *JSONFile) Read(_ context.Context) ([]domain.Task, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, domain.ReadFailure("JSON parsing error", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *JSONFile) Write(_ context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return writeFile(s.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	})
}
