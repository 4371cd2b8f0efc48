package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const mirrorDescription = "Travel Enquiry Form Data Storage"

// MirrorDocument is the on-disk layout of the mirror, also used for export
// and import.
type MirrorDocument struct {
	TravelEnquiries []models.Enquiry `json:"travelEnquiries"`
	CreatedAt       time.Time        `json:"createdAt"`
	Description     string           `json:"description"`
	LastUpdated     time.Time        `json:"lastUpdated"`
}

// Mirror is the local copy of every submission. It is written on every
// submit, whatever the remote outcome, and rewritten as a whole on each
// change.
type Mirror struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

func NewMirror(path string) *Mirror {
	return &Mirror{path: path, now: time.Now}
}

// Append stores e under a fresh time-ordered local ID and returns the
// stored copy.
func (m *Mirror) Append(e models.Enquiry) (models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return e, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return e, fmt.Errorf("%w: %w", ErrMirror, err)
	}
	e.LocalID = id.String()
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now().UTC()
	}
	doc.TravelEnquiries = append(doc.TravelEnquiries, e)
	if err := m.save(doc); err != nil {
		return e, err
	}
	return e, nil
}

// All returns the mirrored enquiries in submission order.
func (m *Mirror) All() ([]models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	return doc.TravelEnquiries, nil
}

// Export returns the mirror document as indented JSON.
func (m *Mirror) Export() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMirror, err)
	}
	return data, nil
}

// Import replaces the mirror contents with the travelEnquiries array of an
// exported document. Documents without that array are rejected and leave
// the mirror untouched. It returns the number of imported enquiries.
func (m *Mirror) Import(data []byte) (int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	list, ok := raw["travelEnquiries"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(list), []byte("[")) {
		return 0, fmt.Errorf("%w: travelEnquiries array missing", ErrInvalidImport)
	}
	var enquiries []models.Enquiry
	if err := json.Unmarshal(list, &enquiries); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	for i := range enquiries {
		if enquiries[i].LocalID != "" {
			continue
		}
		id, err := uuid.NewV7()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrMirror, err)
		}
		enquiries[i].LocalID = id.String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return 0, err
	}
	doc.TravelEnquiries = enquiries
	if err := m.save(doc); err != nil {
		return 0, err
	}
	return len(enquiries), nil
}

// Clear removes every mirrored enquiry.
func (m *Mirror) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return err
	}
	doc.TravelEnquiries = []models.Enquiry{}
	return m.save(doc)
}

func (m *Mirror) Delete(localID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(doc.TravelEnquiries, func(e models.Enquiry) bool { return e.LocalID == localID })
	if i < 0 {
		return fmt.Errorf("%w: local id %s", ErrNotFound, localID)
	}
	doc.TravelEnquiries = slices.Delete(doc.TravelEnquiries, i, i+1)
	return m.save(doc)
}

func (m *Mirror) load() (MirrorDocument, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(bytes.TrimSpace(data)) == 0) {
		now := m.now().UTC()
		return MirrorDocument{
			TravelEnquiries: []models.Enquiry{},
			CreatedAt:       now,
			Description:     mirrorDescription,
			LastUpdated:     now,
		}, nil
	}
	if err != nil {
		return MirrorDocument{}, fmt.Errorf("%w: %w", ErrMirror, err)
	}

	var doc MirrorDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return MirrorDocument{}, fmt.Errorf("%w: corrupt mirror file: %w", ErrMirror, err)
	}
	if doc.TravelEnquiries == nil {
		doc.TravelEnquiries = []models.Enquiry{}
	}
	return doc, nil
}

// save replaces the file atomically via a temporary file in the same
// directory.
func (m *Mirror) save(doc MirrorDocument) error {
	doc.LastUpdated = m.now().UTC()
	if doc.Description == "" {
		doc.Description = mirrorDescription
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMirror, err)
	}

	dir := filepath.Dir(m.path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimPrefix(filepath.Base(m.path), ".")+"-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMirror, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrMirror, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrMirror, err)
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("%w: %w", ErrMirror, err)
	}
	return nil
}
