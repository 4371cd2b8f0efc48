package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/gdg-garage/travel-enquiry-api/internal/apiclient"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const (
	sheetTimestampColumn = "Timestamp"
	sheetNotesPrefix     = "Notes"

	// MaxSheetNotes is the number of NotesN columns the sheet provides.
	MaxSheetNotes = 10
)

// SheetBackend stores one row per enquiry in a hosted spreadsheet API.
// Rows have no category column; the category is inferred from which
// destination column is filled in. Rows are keyed by their Timestamp.
type SheetBackend struct {
	Endpoint string
	Currency string
	client   *http.Client
}

// NewSheetBackend returns a backend for the sheet collection at endpoint.
// A non-empty token is sent as a bearer token on every request.
func NewSheetBackend(endpoint, token, currency string) *SheetBackend {
	client := http.DefaultClient
	if token != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}
	return &SheetBackend{Endpoint: strings.TrimRight(endpoint, "/"), Currency: currency, client: client}
}

func (s *SheetBackend) Name() string {
	return "sheet"
}

func (s *SheetBackend) Write(ctx context.Context, e models.Enquiry) (string, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	row := SheetRow(e)
	body := map[string]any{"data": []map[string]string{row}}
	if err := apiclient.Send(ctx, s.client, apiclient.Request{Method: http.MethodPost, URL: s.Endpoint, Body: body}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}
	return row[sheetTimestampColumn], nil
}

// ReadAll returns the rows of category t (or every row for TypeAll),
// newest first.
func (s *SheetBackend) ReadAll(ctx context.Context, t models.Type) ([]models.Enquiry, error) {
	var rows []map[string]any
	if err := apiclient.Send(ctx, s.client, apiclient.Request{Method: http.MethodGet, URL: s.Endpoint, Out: &rows}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteRead, err)
	}

	enquiries := make([]models.Enquiry, 0, len(rows))
	for _, raw := range rows {
		e := FromSheetRow(stringify(raw), s.Currency)
		if t != models.TypeAll && e.EnquiryType != t {
			continue
		}
		enquiries = append(enquiries, e)
	}
	slices.SortStableFunc(enquiries, func(a, b models.Enquiry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return enquiries, nil
}

// AppendNote writes the note into the first free NotesN column of the row.
func (s *SheetBackend) AppendNote(ctx context.Context, e models.Enquiry, n models.Note) (models.Enquiry, error) {
	key := e.Key()
	if key == "" {
		return e, fmt.Errorf("%w: record has no timestamp", ErrNotFound)
	}
	slot := nextNoteSlot(e.Notes)
	if slot > MaxSheetNotes {
		return e, fmt.Errorf("%w: all %d note columns are used", ErrRemoteWrite, MaxSheetNotes)
	}

	target := fmt.Sprintf("%s/%s/%s", s.Endpoint, sheetTimestampColumn, escapeKey(key))
	body := map[string]any{"data": []map[string]string{{noteColumn(slot): n.Text}}}
	if err := apiclient.Send(ctx, s.client, apiclient.Request{Method: http.MethodPatch, URL: target, Body: body}); err != nil {
		return e, fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}

	n.Slot = slot
	n.ID = strconv.Itoa(slot)
	e.Notes = append(slices.Clone(e.Notes), n)
	return e, nil
}

// nextNoteSlot returns the first unused NotesN column, or MaxSheetNotes+1
// when every column is taken.
func nextNoteSlot(notes []models.Note) int {
	used := make(map[int]bool, len(notes))
	for _, n := range notes {
		used[n.Slot] = true
	}
	slot := 1
	for used[slot] {
		slot++
	}
	return slot
}

// escapeKey encodes a row key as a single path segment, reserved
// characters included.
func escapeKey(key string) string {
	return strings.ReplaceAll(url.QueryEscape(key), "+", "%20")
}

func noteColumn(slot int) string {
	return sheetNotesPrefix + strconv.Itoa(slot)
}

// SheetRow flattens an enquiry into the sheet's columns. Columns of the
// inactive categories are written empty.
func SheetRow(e models.Enquiry) map[string]string {
	row := map[string]string{
		"Name":            e.EnquiryName,
		"ContactNumber":   e.ContactNumber,
		"Email":           e.Email,
		"City":            e.City,
		"Address":         e.Address,
		"Channel":         e.Channel,
		"Reference":       e.Reference,
		"Adults":          strconv.Itoa(e.NumAdults),
		"Kids":            strconv.Itoa(e.NumKids),
		"Infants":         strconv.Itoa(e.NumInfants),
		"TotalPassengers": strconv.Itoa(e.NumTotalPax),

		"TripType":         "",
		"DepartureCity":    "",
		"ArrivalCity":      "",
		"DepartureDate":    "",
		"ReturnDate":       "",
		"PreferredAirline": "",
		"Class":            "",

		"HotelDestination":  "",
		"HotelCheckinDate":  "",
		"HotelCheckoutDate": "",
		"NumberOfRooms":     "",
		"RoomType":          "",
		"StarRating":        "",

		"PackageDestination":   "",
		"PackageDepartureDate": "",
		"PackageReturnDate":    "",
		"Budget":               "",
		"Interests":            "",

		"Notes":              "",
		sheetTimestampColumn: e.Timestamp.UTC().Format(models.TimestampLayout),
	}

	switch e.EnquiryType {
	case models.TypeFlight:
		if f := e.FlightDetails; f != nil {
			row["TripType"] = string(f.TripType)
			row["DepartureCity"] = f.DepartureCity
			row["ArrivalCity"] = f.ArrivalCity
			row["DepartureDate"] = string(f.DepartureDate)
			row["ReturnDate"] = string(f.ReturnDate)
			row["PreferredAirline"] = f.PreferredAirline
			row["Class"] = f.Class
			row["Notes"] = f.Notes
		}
	case models.TypeHotel:
		if h := e.HotelDetails; h != nil {
			row["HotelDestination"] = h.Destination
			row["HotelCheckinDate"] = string(h.CheckinDate)
			row["HotelCheckoutDate"] = string(h.CheckoutDate)
			if h.NumRooms > 0 {
				row["NumberOfRooms"] = strconv.Itoa(h.NumRooms)
			}
			row["RoomType"] = h.RoomType
			row["StarRating"] = h.StarRating
			row["Notes"] = h.Notes
		}
	case models.TypePackage:
		if p := e.PackageDetails; p != nil {
			row["PackageDestination"] = p.Destination
			row["PackageDepartureDate"] = string(p.DepartureDate)
			row["PackageReturnDate"] = string(p.ReturnDate)
			if p.Budget != nil {
				row["Budget"] = p.Budget.Amount.String()
			}
			row["Interests"] = p.Interests
			row["Notes"] = p.Notes
		}
	}
	return row
}

// FromSheetRow rebuilds an enquiry from a sheet row. The Timestamp column
// becomes the record ID.
func FromSheetRow(row map[string]string, currency string) models.Enquiry {
	e := models.Enquiry{
		ID:            row[sheetTimestampColumn],
		EnquiryName:   row["Name"],
		ContactNumber: row["ContactNumber"],
		Email:         row["Email"],
		City:          row["City"],
		Address:       row["Address"],
		Channel:       row["Channel"],
		Reference:     row["Reference"],
		NumAdults:     atoi(row["Adults"]),
		NumKids:       atoi(row["Kids"]),
		NumInfants:    atoi(row["Infants"]),
	}
	if ts, err := time.Parse(time.RFC3339Nano, row[sheetTimestampColumn]); err == nil {
		e.Timestamp = ts
	}

	switch {
	case row["HotelDestination"] != "":
		e.EnquiryType = models.TypeHotel
		e.HotelDetails = &models.HotelDetails{
			Destination:  row["HotelDestination"],
			CheckinDate:  models.Date(row["HotelCheckinDate"]),
			CheckoutDate: models.Date(row["HotelCheckoutDate"]),
			NumRooms:     atoi(row["NumberOfRooms"]),
			RoomType:     row["RoomType"],
			StarRating:   row["StarRating"],
			Notes:        row["Notes"],
		}
	case row["PackageDestination"] != "":
		e.EnquiryType = models.TypePackage
		e.PackageDetails = &models.PackageDetails{
			Destination:   row["PackageDestination"],
			DepartureDate: models.Date(row["PackageDepartureDate"]),
			ReturnDate:    models.Date(row["PackageReturnDate"]),
			Interests:     row["Interests"],
			Notes:         row["Notes"],
		}
		if budget, err := models.NewMoney(row["Budget"], currency); err == nil {
			e.PackageDetails.Budget = budget
		}
	default:
		e.EnquiryType = models.TypeFlight
		e.FlightDetails = &models.FlightDetails{
			TripType:         models.TripType(row["TripType"]),
			DepartureCity:    row["DepartureCity"],
			ArrivalCity:      row["ArrivalCity"],
			DepartureDate:    models.Date(row["DepartureDate"]),
			ReturnDate:       models.Date(row["ReturnDate"]),
			PreferredAirline: row["PreferredAirline"],
			Class:            row["Class"],
			Notes:            row["Notes"],
		}
	}

	for column, text := range row {
		slotText, ok := strings.CutPrefix(column, sheetNotesPrefix)
		if !ok || text == "" {
			continue
		}
		slot, err := strconv.Atoi(slotText)
		if err != nil || slot < 1 {
			continue
		}
		e.Notes = append(e.Notes, models.Note{ID: slotText, Text: text, Slot: slot})
	}
	slices.SortFunc(e.Notes, func(a, b models.Note) int { return a.Slot - b.Slot })

	e.Normalize()
	return e
}

// stringify flattens decoded JSON cell values. Sheet APIs usually return
// strings but some return bare numbers for numeric columns.
func stringify(raw map[string]any) map[string]string {
	row := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			row[k] = v
		case float64:
			row[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			row[k] = fmt.Sprint(v)
		}
	}
	return row
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
