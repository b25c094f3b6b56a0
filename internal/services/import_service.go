package services

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/vocab"
	"github.com/vytor/wordflash/internal/worker"
)

// ImportService handles vocabulary file import
type ImportService interface {
	Import(ctx context.Context, filename string, r io.Reader) (*models.ImportJob, error)
	ImportFile(ctx context.Context, path string) (*models.ImportJob, error)
	Status(ctx context.Context, id string) (*models.ImportJob, error)
}

type importService struct {
	jobQueue jobs.JobQueue
}

// NewImportService creates a new ImportService
func NewImportService(jobQueue jobs.JobQueue) ImportService {
	return &importService{jobQueue: jobQueue}
}

// Import parses the upload right away, so format problems are reported to the
// caller, and stores the words in the background.
func (s *importService) Import(ctx context.Context, filename string, r io.Reader) (*models.ImportJob, error) {
	log := logger.FromContext(ctx)
	log.Info("importing vocabulary: file=%s", filename)

	if !vocab.Supported(filename) {
		return nil, errors.NewBadRequestError("file must be .xlsx or .csv")
	}

	parsed, err := vocab.Parse(r, filename)
	if err != nil {
		if errors.Is(err, vocab.ErrNoEntries) {
			return nil, errors.NewValidationError("file", "contains no words")
		}
		log.Warn("failed to parse vocabulary file: %v", err)
		return nil, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "could not read vocabulary file",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	}

	job, err := s.jobQueue.EnqueueImport(filepath.Base(filename), parsed)
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrPoolStopped) {
			log.Warn("import rejected: %v", err)
			return nil, errors.NewUnavailableError("import queue is busy, try again later", err)
		}
		log.Error("failed to enqueue import: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("vocabulary import queued: job_id=%s, entries=%d, skipped=%d", job.ID, job.Total, job.Skipped)
	return &job, nil
}

// ImportFile queues a vocabulary file from disk, used to seed the database at startup.
func (s *importService) ImportFile(ctx context.Context, path string) (*models.ImportJob, error) {
	parsed, err := vocab.ReadFile(path)
	if err != nil {
		logger.FromContext(ctx).Error("failed to read vocabulary file %s: %v", path, err)
		return nil, errors.NewInternalError(err)
	}

	job, err := s.jobQueue.EnqueueImport(filepath.Base(path), parsed)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &job, nil
}

func (s *importService) Status(ctx context.Context, id string) (*models.ImportJob, error) {
	logger.FromContext(ctx).Debug("getting import status: job_id=%s", id)

	job, ok := s.jobQueue.ImportStatus(id)
	if !ok {
		return nil, errors.NewNotFoundError("import job", id)
	}
	return &job, nil
}
