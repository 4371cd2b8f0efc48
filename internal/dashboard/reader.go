// Package dashboard reads persisted enquiries back for staff: it owns a
// cache of the last full fetch, computes stats, filters the list and
// appends notes through the remote backend.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

var ErrEmptyNote = errors.New("note text is empty")

// Reader caches the full enquiry collection. Every fetch replaces the cache
// as a whole; a failed fetch leaves it untouched.
type Reader struct {
	backend gateway.Backend
	now     func() time.Time

	mu        sync.Mutex
	records   []models.Enquiry
	loaded    bool
	fetchedAt time.Time
}

func NewReader(backend gateway.Backend) *Reader {
	return &Reader{backend: backend, now: time.Now}
}

// FetchAll reads every enquiry from the backend and replaces the cache.
func (r *Reader) FetchAll(ctx context.Context) ([]models.Enquiry, error) {
	records, err := r.backend.ReadAll(ctx, models.TypeAll)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
	r.loaded = true
	r.fetchedAt = r.now()
	return slices.Clone(records), nil
}

// Records returns the cached collection, fetching it on first use.
func (r *Reader) Records(ctx context.Context) ([]models.Enquiry, error) {
	r.mu.Lock()
	if r.loaded {
		records := slices.Clone(r.records)
		r.mu.Unlock()
		return records, nil
	}
	r.mu.Unlock()
	return r.FetchAll(ctx)
}

// FetchedAt is the time of the last successful fetch.
func (r *Reader) FetchedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetchedAt
}

// Find looks a record up in the cache by its backend key.
func (r *Reader) Find(ctx context.Context, t models.Type, id string) (models.Enquiry, error) {
	records, err := r.Records(ctx)
	if err != nil {
		return models.Enquiry{}, err
	}
	for _, e := range records {
		if e.Key() == id && (t == models.TypeAll || e.EnquiryType == t) {
			return e, nil
		}
	}
	return models.Enquiry{}, fmt.Errorf("%w: %s %s", gateway.ErrNotFound, t, id)
}

// AppendNote adds a note to the record identified by (t, id) on the
// backend and updates the cached copy.
func (r *Reader) AppendNote(ctx context.Context, t models.Type, id, author, text string) (models.Enquiry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Enquiry{}, ErrEmptyNote
	}
	e, err := r.Find(ctx, t, id)
	if err != nil {
		return models.Enquiry{}, err
	}

	updated, err := r.backend.AppendNote(ctx, e, models.Note{
		Author:    author,
		Text:      text,
		CreatedAt: r.now().UTC(),
	})
	if err != nil {
		return models.Enquiry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	records := slices.Clone(r.records)
	for i := range records {
		if records[i].Key() == e.Key() && records[i].EnquiryType == e.EnquiryType {
			records[i] = updated
		}
	}
	r.records = records
	return updated, nil
}
