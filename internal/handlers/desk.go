package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gdg-garage/travel-enquiry-api/internal/auth"
	"github.com/gdg-garage/travel-enquiry-api/internal/compose"
	"github.com/gdg-garage/travel-enquiry-api/internal/dashboard"
	"github.com/gdg-garage/travel-enquiry-api/internal/enquiry"
	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
	"github.com/gdg-garage/travel-enquiry-api/internal/notifier"
)

// DeskHandler is the HTTP surface of the enquiry form and the staff
// dashboard.
type DeskHandler struct {
	builder  *enquiry.Builder
	compose  compose.Options
	gateway  *gateway.Gateway
	mirror   *gateway.Mirror
	reader   *dashboard.Reader
	notifier notifier.Notifier
}

func NewDeskHandler(builder *enquiry.Builder, opts compose.Options, gw *gateway.Gateway, reader *dashboard.Reader, n notifier.Notifier) *DeskHandler {
	return &DeskHandler{
		builder:  builder,
		compose:  opts,
		gateway:  gw,
		mirror:   gw.Mirror,
		reader:   reader,
		notifier: n,
	}
}

type FormRequest struct {
	Body enquiry.Form
}

type PreviewResponse struct {
	Body struct {
		Record          models.Enquiry          `json:"record"`
		MinDate         models.Date             `json:"minDate" doc:"Earliest selectable date"`
		ReturnDate      enquiry.ReturnDateState `json:"returnDate" doc:"Gating of the flight return date"`
		DateChecks      []enquiry.DateCheck     `json:"dateChecks"`
		ValidationError string                  `json:"validationError,omitempty" doc:"First failing submit check"`
		Messages        compose.Messages        `json:"messages"`
	}
}

// HandlePreview recomputes everything the form shows while it is being
// filled in. It never persists anything.
func (h *DeskHandler) HandlePreview(ctx context.Context, input *FormRequest) (*PreviewResponse, error) {
	record := h.builder.Record(input.Body)

	res := &PreviewResponse{}
	res.Body.Record = record
	res.Body.MinDate = enquiry.MinSelectableDate(h.builder.Now())
	if record.FlightDetails != nil {
		res.Body.ReturnDate = h.builder.Policy.Gate(record.FlightDetails.TripType)
	} else {
		res.Body.ReturnDate = h.builder.Policy.Gate(models.OneWay)
	}
	res.Body.DateChecks = enquiry.CheckDates(record)
	if res.Body.DateChecks == nil {
		res.Body.DateChecks = []enquiry.DateCheck{}
	}
	if err := enquiry.Validate(record); err != nil {
		res.Body.ValidationError = err.Error()
	}
	res.Body.Messages = compose.All(record, h.compose)
	return res, nil
}

type SubmitResponse struct {
	Body gateway.SubmitResult
}

// HandleSubmit validates the form and persists the record. Remote failures
// are not HTTP errors: the result reports the fallback and carries the
// notice to show.
func (h *DeskHandler) HandleSubmit(ctx context.Context, input *FormRequest) (*SubmitResponse, error) {
	record := h.builder.Record(input.Body)
	if err := enquiry.Validate(record); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	result := h.gateway.Submit(ctx, record)
	if h.notifier != nil && result.BackendUsed != gateway.BackendNone {
		go h.notify(context.WithoutCancel(ctx), record, result)
	}

	return &SubmitResponse{Body: result}, nil
}

func (h *DeskHandler) notify(ctx context.Context, record models.Enquiry, result gateway.SubmitResult) {
	record.ID, record.LocalID = result.ID, result.LocalID
	if err := h.notifier.NotifyEnquiry(ctx, record, result); err != nil {
		log.Printf("Failed to notify about enquiry %s: %v", record.Key(), err)
	}
}

type ListDeskRequest struct {
	Type    string `query:"type" enum:"all,flight,hotel,package" default:"all"`
	Search  string `query:"search" doc:"Case-insensitive search over names, contacts, cities and destinations"`
	Refresh bool   `query:"refresh" doc:"Fetch from the backend instead of the cache"`
}

type ListDeskResponse struct {
	Body struct {
		Stats     dashboard.Stats  `json:"stats"`
		Count     int              `json:"count"`
		Data      []models.Enquiry `json:"data"`
		FetchedAt time.Time        `json:"fetchedAt"`
	}
}

// HandleList returns stats over the whole collection and the filtered list.
func (h *DeskHandler) HandleList(ctx context.Context, input *ListDeskRequest) (*ListDeskResponse, error) {
	t, err := models.ParseType(input.Type)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var records []models.Enquiry
	if input.Refresh {
		records, err = h.reader.FetchAll(ctx)
	} else {
		records, err = h.reader.Records(ctx)
	}
	if err != nil {
		return nil, huma.Error502BadGateway("Failed to load enquiries: " + err.Error())
	}

	data := dashboard.ApplyFilters(records, dashboard.Filter{Type: t, Search: input.Search})
	res := &ListDeskResponse{}
	res.Body.Stats = dashboard.ComputeStats(records)
	res.Body.Count = len(data)
	res.Body.Data = data
	res.Body.FetchedAt = h.reader.FetchedAt()
	return res, nil
}

type GetDeskRequest struct {
	Type string `query:"type" enum:"all,flight,hotel,package" default:"all"`
	ID   string `query:"id" required:"true" minLength:"1"`
}

type EnquiryResponse struct {
	Body models.Enquiry
}

func (h *DeskHandler) HandleGet(ctx context.Context, input *GetDeskRequest) (*EnquiryResponse, error) {
	t, err := models.ParseType(input.Type)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	e, err := h.reader.Find(ctx, t, input.ID)
	if err != nil {
		return nil, deskError(err)
	}
	return &EnquiryResponse{Body: e}, nil
}

type DeskNoteRequest struct {
	Body struct {
		Type string `json:"type" enum:"flight,hotel,package"`
		ID   string `json:"id" minLength:"1"`
		Text string `json:"text" minLength:"1"`
	}
}

func (h *DeskHandler) HandleAddNote(ctx context.Context, input *DeskNoteRequest) (*EnquiryResponse, error) {
	staff, ok := auth.StaffFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	e, err := h.reader.AppendNote(ctx, models.Type(input.Body.Type), input.Body.ID, staff.Name, input.Body.Text)
	if err != nil {
		return nil, deskError(err)
	}
	return &EnquiryResponse{Body: e}, nil
}

type MirrorListRequest struct {
	Search string `query:"search"`
}

type MirrorListResponse struct {
	Body struct {
		Count int              `json:"count"`
		Data  []models.Enquiry `json:"data"`
	}
}

func (h *DeskHandler) HandleMirrorList(ctx context.Context, input *MirrorListRequest) (*MirrorListResponse, error) {
	records, err := h.mirror.All()
	if err != nil {
		return nil, deskError(err)
	}
	data := dashboard.ApplyFilters(records, dashboard.Filter{Search: input.Search})
	res := &MirrorListResponse{}
	res.Body.Count = len(data)
	res.Body.Data = data
	return res, nil
}

type MirrorExportResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *DeskHandler) HandleMirrorExport(ctx context.Context, input *struct{}) (*MirrorExportResponse, error) {
	data, err := h.mirror.Export()
	if err != nil {
		return nil, deskError(err)
	}
	return &MirrorExportResponse{
		ContentType:        "application/json",
		ContentDisposition: `attachment; filename="travel-enquiries-` + time.Now().Format(models.DateLayout) + `.json"`,
		Body:               data,
	}, nil
}

type MirrorImportRequest struct {
	RawBody []byte `contentType:"application/json"`
}

type MirrorImportResponse struct {
	Body struct {
		Imported int `json:"imported"`
	}
}

// HandleMirrorImport replaces the mirror with an exported document.
func (h *DeskHandler) HandleMirrorImport(ctx context.Context, input *MirrorImportRequest) (*MirrorImportResponse, error) {
	n, err := h.mirror.Import(input.RawBody)
	if err != nil {
		return nil, deskError(err)
	}
	res := &MirrorImportResponse{}
	res.Body.Imported = n
	return res, nil
}

func (h *DeskHandler) HandleMirrorClear(ctx context.Context, input *struct{}) (*struct{}, error) {
	if err := h.mirror.Clear(); err != nil {
		return nil, deskError(err)
	}
	return nil, nil
}

type MirrorDeleteRequest struct {
	LocalID string `path:"localId"`
}

func (h *DeskHandler) HandleMirrorDelete(ctx context.Context, input *MirrorDeleteRequest) (*struct{}, error) {
	if err := h.mirror.Delete(input.LocalID); err != nil {
		return nil, deskError(err)
	}
	return nil, nil
}

// deskError maps package errors onto HTTP errors.
func deskError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrEmptyNote), errors.Is(err, gateway.ErrInvalidImport):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, gateway.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, gateway.ErrRemoteRead), errors.Is(err, gateway.ErrRemoteWrite):
		return huma.Error502BadGateway(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
