package dashboard

import (
	"strings"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

type Stats struct {
	FlightCount  int `json:"flightCount"`
	HotelCount   int `json:"hotelCount"`
	PackageCount int `json:"packageCount"`
	Total        int `json:"total"`
}

// ComputeStats counts records per category. Total is the length of the
// collection, so records of an unknown category still count toward it.
func ComputeStats(records []models.Enquiry) Stats {
	s := Stats{Total: len(records)}
	for _, e := range records {
		switch e.EnquiryType {
		case models.TypeFlight:
			s.FlightCount++
		case models.TypeHotel:
			s.HotelCount++
		case models.TypePackage:
			s.PackageCount++
		}
	}
	return s
}

// Field extracts one searchable value from a record.
type Field func(models.Enquiry) string

// DefaultSearchFields are the fields a free-text search looks at.
var DefaultSearchFields = []Field{
	func(e models.Enquiry) string { return e.EnquiryName },
	func(e models.Enquiry) string { return e.Email },
	func(e models.Enquiry) string { return e.City },
	func(e models.Enquiry) string { return e.ContactNumber },
	func(e models.Enquiry) string { return e.Reference },
	func(e models.Enquiry) string { return e.Channel },
	func(e models.Enquiry) string {
		if e.FlightDetails == nil {
			return ""
		}
		return e.FlightDetails.DepartureCity
	},
	func(e models.Enquiry) string {
		if e.FlightDetails == nil {
			return ""
		}
		return e.FlightDetails.ArrivalCity
	},
	func(e models.Enquiry) string {
		if e.HotelDetails == nil {
			return ""
		}
		return e.HotelDetails.Destination
	},
	func(e models.Enquiry) string {
		if e.PackageDetails == nil {
			return ""
		}
		return e.PackageDetails.Destination
	},
}

// Filter selects records by category and a case-insensitive substring
// search. A nil Fields uses DefaultSearchFields.
type Filter struct {
	Type   models.Type
	Search string
	Fields []Field
}

// ApplyFilters returns the matching records in their original order.
func ApplyFilters(records []models.Enquiry, f Filter) []models.Enquiry {
	fields := f.Fields
	if fields == nil {
		fields = DefaultSearchFields
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Enquiry, 0, len(records))
	for _, e := range records {
		if f.Type != "" && f.Type != models.TypeAll && e.EnquiryType != f.Type {
			continue
		}
		if needle != "" && !matches(e, fields, needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e models.Enquiry, fields []Field, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(e)), needle) {
			return true
		}
	}
	return false
}
