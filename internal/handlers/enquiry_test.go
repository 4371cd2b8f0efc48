package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gdg-garage/travel-enquiry-api/internal/database"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func saveRequest(e models.Enquiry) *SaveEnquiryRequest {
	return &SaveEnquiryRequest{Body: e}
}

func contact(t models.Type, name string, at time.Time) models.Enquiry {
	return models.Enquiry{
		Timestamp:     at,
		EnquiryType:   t,
		EnquiryName:   name,
		ContactNumber: "9000000000",
		Email:         name + "@example.com",
		Channel:       "Walk-in",
		NumAdults:     2,
		NumKids:       1,
	}
}

func TestHandleSave(t *testing.T) {
	db := setupTestDB(t)
	handler := NewEnquiryHandler(db)
	ctx := context.Background()

	t.Run("flight defaults", func(t *testing.T) {
		e := contact(models.TypeFlight, "asha", time.Now())
		e.FlightDetails = &models.FlightDetails{DepartureCity: "Pune", ArrivalCity: "Goa"}

		resp, err := handler.HandleSave(ctx, saveRequest(e))
		require.NoError(t, err)
		assert.True(t, resp.Body.Success)
		assert.NotZero(t, resp.Body.ID)

		var row models.FlightEnquiry
		require.NoError(t, db.First(&row, resp.Body.ID).Error)
		assert.Equal(t, "One Way", row.FlightTripType)
		assert.Equal(t, "Economy", row.FlightClass)
		assert.Equal(t, 3, row.NumTotalPax)
	})

	t.Run("package budget", func(t *testing.T) {
		e := contact(models.TypePackage, "meera", time.Now())
		e.PackageDetails = &models.PackageDetails{
			Destination: "Kerala",
			Budget:      &models.Money{Amount: decimal.RequireFromString("75000.50"), Currency: "INR"},
		}

		resp, err := handler.HandleSave(ctx, saveRequest(e))
		require.NoError(t, err)

		var row models.TripEnquiry
		require.NoError(t, db.First(&row, resp.Body.ID).Error)
		require.True(t, row.PackageBudget.Valid)
		assert.True(t, decimal.RequireFromString("75000.50").Equal(row.PackageBudget.Decimal))
		assert.Equal(t, "INR", row.PackageBudgetCurrency)
	})

	t.Run("zero budget survives a round trip", func(t *testing.T) {
		e := contact(models.TypePackage, "kiran", time.Now())
		e.PackageDetails = &models.PackageDetails{
			Destination: "Ladakh",
			Budget:      &models.Money{Amount: decimal.Zero, Currency: "INR"},
		}
		resp, err := handler.HandleSave(ctx, saveRequest(e))
		require.NoError(t, err)

		var row models.TripEnquiry
		require.NoError(t, db.First(&row, resp.Body.ID).Error)
		got := row.Enquiry().PackageDetails.Budget
		require.NotNil(t, got)
		assert.True(t, got.Amount.IsZero())
		assert.Equal(t, "INR", got.Currency)
	})

	t.Run("no budget stays absent", func(t *testing.T) {
		e := contact(models.TypePackage, "dev", time.Now())
		e.PackageDetails = &models.PackageDetails{Destination: "Sikkim"}
		resp, err := handler.HandleSave(ctx, saveRequest(e))
		require.NoError(t, err)

		var row models.TripEnquiry
		require.NoError(t, db.First(&row, resp.Body.ID).Error)
		assert.False(t, row.PackageBudget.Valid)
		assert.Nil(t, row.Enquiry().PackageDetails.Budget)
	})

	t.Run("missing required fields", func(t *testing.T) {
		e := contact(models.TypeHotel, "ravi", time.Now())
		e.Email = ""

		_, err := handler.HandleSave(ctx, saveRequest(e))
		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 400, se.GetStatus())
	})
}

func TestHandleListAndNotes(t *testing.T) {
	db := setupTestDB(t)
	handler := NewEnquiryHandler(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, e := range []models.Enquiry{
		contact(models.TypeFlight, "first", base),
		contact(models.TypeHotel, "second", base.Add(time.Hour)),
		contact(models.TypePackage, "third", base.Add(2*time.Hour)),
		contact(models.TypeHotel, "fourth", base.Add(3*time.Hour)),
	} {
		_, err := handler.HandleSave(ctx, saveRequest(e))
		require.NoError(t, err, i)
	}

	all, err := handler.HandleList(ctx, &ListEnquiriesRequest{Type: "all"})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Body.Count)
	require.Len(t, all.Body.Data, 4)
	assert.Equal(t, "fourth", all.Body.Data[0].EnquiryName)
	assert.Equal(t, "first", all.Body.Data[3].EnquiryName)
	assert.Equal(t, 3, all.Body.Data[0].NumTotalPax)

	hotels, err := handler.HandleList(ctx, &ListEnquiriesRequest{Type: "hotel"})
	require.NoError(t, err)
	require.Equal(t, 2, hotels.Body.Count)
	assert.Equal(t, models.TypeHotel, hotels.Body.Data[1].EnquiryType)
	require.NotNil(t, hotels.Body.Data[1].HotelDetails)
	assert.Equal(t, 1, hotels.Body.Data[1].HotelDetails.NumRooms)

	// Notes attach by (type, id); ids repeat across tables.
	noteReq := &AddNoteRequest{Type: "hotel", ID: 1}
	noteReq.Body.Author = "priya"
	noteReq.Body.Text = "sent three options"
	note, err := handler.HandleAddNote(ctx, noteReq)
	require.NoError(t, err)
	assert.Equal(t, "sent three options", note.Body.Note.Text)

	all, err = handler.HandleList(ctx, &ListEnquiriesRequest{Type: "all"})
	require.NoError(t, err)
	for _, e := range all.Body.Data {
		if e.EnquiryType == models.TypeHotel && e.ID == "1" {
			require.Len(t, e.Notes, 1)
			assert.Equal(t, "priya", e.Notes[0].Author)
		} else {
			assert.Empty(t, e.Notes, e.EnquiryName)
		}
	}

	_, err = handler.HandleAddNote(ctx, &AddNoteRequest{Type: "flight", ID: 99})
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.GetStatus())

	status, err := handler.HandleStatus(ctx, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"flight": 1, "hotel": 2, "trip": 1}, status.Body.Tables)
}
