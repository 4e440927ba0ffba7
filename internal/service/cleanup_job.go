package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/pkg/jobs"
)

// JobTypeRemoveUpload deletes a stored upload whose gallery item is gone.
const JobTypeRemoveUpload = "upload.remove"

type fileRemover interface {
	Delete(filename string) error
}

// UploadCleaner processes upload removal jobs.
type UploadCleaner struct {
	storage fileRemover
	metrics *MetricsService
	logger  *zap.Logger
}

// NewUploadCleaner constructs the job handler.
func NewUploadCleaner(storage fileRemover, metrics *MetricsService, logger *zap.Logger) *UploadCleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadCleaner{storage: storage, metrics: metrics, logger: logger}
}

// Handle implements jobs.Handler.
func (c *UploadCleaner) Handle(ctx context.Context, job jobs.Job) error {
	if job.Type != JobTypeRemoveUpload {
		return fmt.Errorf("unexpected job type %q", job.Type)
	}
	name, ok := job.Payload.(string)
	if !ok || name == "" {
		return fmt.Errorf("job %s: payload is not a filename", job.ID)
	}
	if err := c.storage.Delete(name); err != nil {
		c.metrics.RecordCleanup(false)
		return err
	}
	c.metrics.RecordCleanup(true)
	c.logger.Debug("upload removed", zap.String("file", name), zap.Int("attempt", job.Attempt))
	return nil
}
