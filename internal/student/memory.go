package student

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/bassista/go_grades/internal/logger"
	"github.com/go-playground/validator/v10"
)

// MemoryRepository keeps students in memory. It backs development runs and tests
// when no database is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	students map[int64]Student
}

func NewMemoryRepository(students ...Student) *MemoryRepository {
	mr := &MemoryRepository{students: map[int64]Student{}}
	for _, s := range students {
		mr.students[s.ID] = s
	}
	return mr
}

// NewMemoryRepositoryFromFile seeds the repository from a JSON array of students.
func NewMemoryRepositoryFromFile(path string) (*MemoryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read students seed file: %w", err)
	}

	var students []Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("decode students seed file: %w", err)
	}

	v := validator.New()
	for i := range students {
		if err := v.Struct(&students[i]); err != nil {
			return nil, fmt.Errorf("validate student %d in seed file: %w", i, err)
		}
	}

	logger.WithComponent("students").Infof("seeded %d students from %s", len(students), path)
	return NewMemoryRepository(students...), nil
}

func (m *MemoryRepository) Get(_ context.Context, id int64) (*Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[id]
	logger.WithComponent("memory-students").Debugf("lookup student %d, found: %v", id, ok)
	if !ok {
		return nil, ErrStudentNotFound
	}
	return &s, nil
}

func (m *MemoryRepository) Ping(_ context.Context) error { return nil }

func (m *MemoryRepository) Close() {}
