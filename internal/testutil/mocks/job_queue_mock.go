package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/vocab"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(source string, parsed *vocab.Result) (models.ImportJob, error) {
	args := m.Called(source, parsed)
	return args.Get(0).(models.ImportJob), args.Error(1)
}

func (m *MockJobQueue) ImportStatus(id string) (models.ImportJob, bool) {
	args := m.Called(id)
	return args.Get(0).(models.ImportJob), args.Bool(1)
}

func (m *MockJobQueue) Pending() int {
	args := m.Called()
	return args.Int(0)
}
