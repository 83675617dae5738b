package storage

import (
	"context"
	"io"

	"todo_api/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLFile stores the collection as a YAML sequence of task mappings.
type YAMLFile struct {
	path string
}

// NewYAMLFile returns a YAML backend for path.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// Path returns the file the backend reads and writes.
func (s *YAMLFile) Path() string {
	return s.path
}

func (s *YAMLFile) Read(_ context.Context) ([]domain.Task, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, domain.ReadFailure("YAML parsing error", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *YAMLFile) Write(_ context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return writeFile(s.path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	})
}
