package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

type stubBackend struct {
	records []models.Enquiry
	readErr error
	reads   int
	notes   []models.Note
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Write(context.Context, models.Enquiry) (string, error) { return "", nil }

func (s *stubBackend) ReadAll(context.Context, models.Type) ([]models.Enquiry, error) {
	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.records, nil
}

func (s *stubBackend) AppendNote(_ context.Context, e models.Enquiry, n models.Note) (models.Enquiry, error) {
	s.notes = append(s.notes, n)
	e.Notes = append(e.Notes, n)
	return e, nil
}

func record(id string, t models.Type, name string) models.Enquiry {
	e := models.Enquiry{ID: id, EnquiryType: t, EnquiryName: name}
	e.Normalize()
	return e
}

func sample() []models.Enquiry {
	goa := record("1", models.TypeFlight, "Asha")
	goa.FlightDetails.ArrivalCity = "Goa"
	hotel := record("2", models.TypeHotel, "Ravi")
	hotel.HotelDetails.Destination = "Jaipur Palace"
	return []models.Enquiry{
		goa,
		hotel,
		record("3", models.TypeFlight, "Meera"),
		record("4", models.TypeHotel, "Kabir"),
		record("5", models.TypePackage, "Zoya"),
	}
}

func TestComputeStats(t *testing.T) {
	records := []models.Enquiry{
		record("1", models.TypeFlight, ""),
		record("2", models.TypeFlight, ""),
		record("3", models.TypeFlight, ""),
		record("4", models.TypeHotel, ""),
		record("5", models.TypePackage, ""),
		record("6", models.TypePackage, ""),
	}
	assert.Equal(t, Stats{FlightCount: 3, HotelCount: 1, PackageCount: 2, Total: 6}, ComputeStats(records))
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestApplyFilters(t *testing.T) {
	records := sample()

	hotels := ApplyFilters(records, Filter{Type: models.TypeHotel})
	require.Len(t, hotels, 2)
	assert.Equal(t, "2", hotels[0].ID)
	assert.Equal(t, "4", hotels[1].ID)

	assert.Len(t, ApplyFilters(records, Filter{Type: models.TypeAll}), 5)
	assert.Len(t, ApplyFilters(records, Filter{}), 5)

	byCity := ApplyFilters(records, Filter{Search: "goa"})
	require.Len(t, byCity, 1)
	assert.Equal(t, "Asha", byCity[0].EnquiryName)

	assert.Len(t, ApplyFilters(records, Filter{Type: models.TypeFlight, Search: "PALACE"}), 0)
	assert.Len(t, ApplyFilters(records, Filter{Type: models.TypeHotel, Search: "PALACE"}), 1)

	nameOnly := []Field{func(e models.Enquiry) string { return e.EnquiryName }}
	assert.Len(t, ApplyFilters(records, Filter{Search: "goa", Fields: nameOnly}), 0)
}

func TestReaderCachesUntilRefetch(t *testing.T) {
	backend := &stubBackend{records: sample()}
	r := NewReader(backend)
	ctx := context.Background()

	_, err := r.Records(ctx)
	require.NoError(t, err)
	_, err = r.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.reads)

	backend.records = backend.records[:2]
	all, err := r.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, backend.reads)
}

func TestReaderFetchErrorKeepsCache(t *testing.T) {
	backend := &stubBackend{records: sample()}
	r := NewReader(backend)
	ctx := context.Background()

	_, err := r.FetchAll(ctx)
	require.NoError(t, err)

	backend.readErr = gateway.ErrRemoteRead
	_, err = r.FetchAll(ctx)
	assert.True(t, errors.Is(err, gateway.ErrRemoteRead))

	cached, err := r.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 5)
}

func TestReaderFindAndAppendNote(t *testing.T) {
	backend := &stubBackend{records: sample()}
	r := NewReader(backend)
	ctx := context.Background()

	e, err := r.Find(ctx, models.TypeHotel, "4")
	require.NoError(t, err)
	assert.Equal(t, "Kabir", e.EnquiryName)

	_, err = r.Find(ctx, models.TypeFlight, "4")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = r.AppendNote(ctx, models.TypeHotel, "4", "desk", "   ")
	assert.ErrorIs(t, err, ErrEmptyNote)

	updated, err := r.AppendNote(ctx, models.TypeHotel, "4", "desk", "called back")
	require.NoError(t, err)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "desk", updated.Notes[0].Author)

	cached, err := r.Find(ctx, models.TypeHotel, "4")
	require.NoError(t, err)
	assert.Len(t, cached.Notes, 1)
	assert.Len(t, backend.notes, 1)
}
