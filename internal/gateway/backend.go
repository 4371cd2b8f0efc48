// Package gateway persists enquiries to a remote backend and mirrors every
// submission into a local file that doubles as the fallback store.
package gateway

import (
	"context"
	"errors"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

var (
	ErrRemoteWrite   = errors.New("remote write failed")
	ErrRemoteRead    = errors.New("remote read failed")
	ErrMirror        = errors.New("local mirror failed")
	ErrInvalidImport = errors.New("invalid mirror import")
	ErrNotFound      = errors.New("enquiry not found")
)

// Backend is a remote store for enquiries. Write returns the key the
// backend assigned, which is what AppendNote later addresses the record by.
type Backend interface {
	Name() string
	Write(ctx context.Context, e models.Enquiry) (string, error)
	ReadAll(ctx context.Context, t models.Type) ([]models.Enquiry, error)
	AppendNote(ctx context.Context, e models.Enquiry, n models.Note) (models.Enquiry, error)
}
