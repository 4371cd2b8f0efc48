package handlers

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/gdg-garage/travel-enquiry-api/internal/enquiry"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// EnquiryHandler serves the relational backend: one table per category
// plus a notes table.
type EnquiryHandler struct {
	db *gorm.DB
}

func NewEnquiryHandler(db *gorm.DB) *EnquiryHandler {
	return &EnquiryHandler{db: db}
}

type SaveEnquiryRequest struct {
	Body models.Enquiry
}

type SaveEnquiryResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      uint   `json:"id"`
	}
}

func (h *EnquiryHandler) HandleSave(ctx context.Context, input *SaveEnquiryRequest) (*SaveEnquiryResponse, error) {
	e := input.Body
	e.Normalize()
	if err := enquiry.ValidateCommon(e); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	db := h.db.WithContext(ctx)
	var (
		id  uint
		err error
	)
	switch e.EnquiryType {
	case models.TypeFlight:
		row := models.NewFlightEnquiry(e)
		err = db.Create(&row).Error
		id = row.ID
	case models.TypeHotel:
		row := models.NewHotelEnquiry(e)
		err = db.Create(&row).Error
		id = row.ID
	case models.TypePackage:
		row := models.NewTripEnquiry(e)
		err = db.Create(&row).Error
		id = row.ID
	default:
		return nil, huma.Error400BadRequest("Invalid enquiry type")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to save enquiry: " + err.Error())
	}

	res := &SaveEnquiryResponse{}
	res.Body.Success = true
	res.Body.Message = "Enquiry saved successfully"
	res.Body.ID = id
	return res, nil
}

type ListEnquiriesRequest struct {
	Type string `query:"type" enum:"all,flight,hotel,package" default:"all" doc:"Category filter"`
}

type ListEnquiriesResponse struct {
	Body struct {
		Success bool             `json:"success"`
		Data    []models.Enquiry `json:"data"`
		Count   int              `json:"count"`
	}
}

// HandleList returns enquiries newest first, merged across categories for
// type=all.
func (h *EnquiryHandler) HandleList(ctx context.Context, input *ListEnquiriesRequest) (*ListEnquiriesResponse, error) {
	t, err := models.ParseType(input.Type)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	data, err := h.list(ctx, t)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to fetch enquiries: " + err.Error())
	}

	res := &ListEnquiriesResponse{}
	res.Body.Success = true
	res.Body.Data = data
	res.Body.Count = len(data)
	return res, nil
}

func (h *EnquiryHandler) list(ctx context.Context, t models.Type) ([]models.Enquiry, error) {
	db := h.db.WithContext(ctx)
	data := []models.Enquiry{}

	if t == models.TypeAll || t == models.TypeFlight {
		var rows []models.FlightEnquiry
		if err := db.Order("submitted_at desc").Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			data = append(data, r.Enquiry())
		}
	}
	if t == models.TypeAll || t == models.TypeHotel {
		var rows []models.HotelEnquiry
		if err := db.Order("submitted_at desc").Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			data = append(data, r.Enquiry())
		}
	}
	if t == models.TypeAll || t == models.TypePackage {
		var rows []models.TripEnquiry
		if err := db.Order("submitted_at desc").Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			data = append(data, r.Enquiry())
		}
	}

	var notes []models.EnquiryNote
	if err := db.Order("created_at asc").Find(&notes).Error; err != nil {
		return nil, err
	}
	byRecord := make(map[string][]models.Note, len(notes))
	for _, n := range notes {
		key := string(n.EnquiryType) + "/" + strconv.FormatUint(uint64(n.EnquiryID), 10)
		byRecord[key] = append(byRecord[key], n.Note())
	}
	for i := range data {
		data[i].Notes = byRecord[string(data[i].EnquiryType)+"/"+data[i].ID]
	}

	slices.SortStableFunc(data, func(a, b models.Enquiry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return data, nil
}

type AddNoteRequest struct {
	Type string `path:"type" enum:"flight,hotel,package"`
	ID   uint   `path:"id"`
	Body struct {
		Author string `json:"author,omitempty" maxLength:"255"`
		Text   string `json:"text" minLength:"1"`
	}
}

type AddNoteResponse struct {
	Body struct {
		Success bool        `json:"success"`
		Note    models.Note `json:"note"`
	}
}

func (h *EnquiryHandler) HandleAddNote(ctx context.Context, input *AddNoteRequest) (*AddNoteResponse, error) {
	t := models.Type(input.Type)
	db := h.db.WithContext(ctx)

	var model any
	switch t {
	case models.TypeFlight:
		model = &models.FlightEnquiry{}
	case models.TypeHotel:
		model = &models.HotelEnquiry{}
	case models.TypePackage:
		model = &models.TripEnquiry{}
	default:
		return nil, huma.Error400BadRequest("Invalid enquiry type")
	}
	if err := db.First(model, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Enquiry not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load enquiry: " + err.Error())
	}

	note := models.EnquiryNote{
		EnquiryType: t,
		EnquiryID:   input.ID,
		Author:      input.Body.Author,
		Text:        input.Body.Text,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save note: " + err.Error())
	}

	res := &AddNoteResponse{}
	res.Body.Success = true
	res.Body.Note = note.Note()
	return res, nil
}

type StatusResponse struct {
	Body struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Tables  map[string]int64 `json:"tables"`
	}
}

// HandleStatus reports the row count of every enquiry table.
func (h *EnquiryHandler) HandleStatus(ctx context.Context, input *struct{}) (*StatusResponse, error) {
	db := h.db.WithContext(ctx)
	tables := map[string]any{
		"flight": &models.FlightEnquiry{},
		"hotel":  &models.HotelEnquiry{},
		"trip":   &models.TripEnquiry{},
	}

	res := &StatusResponse{}
	res.Body.Tables = make(map[string]int64, len(tables))
	for name, model := range tables {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return nil, huma.Error503ServiceUnavailable("Database connection failed: " + err.Error())
		}
		res.Body.Tables[name] = count
	}
	res.Body.Success = true
	res.Body.Message = "Database connection successful"
	return res, nil
}
