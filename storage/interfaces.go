package storage

import "cafe-insights/models"

// CleanWriter is the interface any cleaned-dataset export backend must satisfy.
type CleanWriter interface {
	WriteClean(records []*models.Feedback) error
	Close() error
}

// RejectionWriter is the interface for exporting the rejection log.
type RejectionWriter interface {
	WriteRejections(rejections []*models.Rejection) error
	Close() error
}
