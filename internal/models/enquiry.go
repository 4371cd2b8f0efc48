package models

import (
	"fmt"
	"strings"
	"time"
)

// Type discriminates the three enquiry categories. TypeAll is only used as a
// read filter.
type Type string

const (
	TypeAll     Type = "all"
	TypeFlight  Type = "flight"
	TypeHotel   Type = "hotel"
	TypePackage Type = "package"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeAll, nil
	case TypeAll, TypeFlight, TypeHotel, TypePackage:
		return t, nil
	default:
		return "", fmt.Errorf("unknown enquiry type %q", s)
	}
}

// Title is the capitalised label used in subject lines ("Flight").
func (t Type) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

type TripType string

const (
	OneWay    TripType = "One Way"
	RoundTrip TripType = "Round Trip"
	MultiCity TripType = "Multi-City"
)

// MaxPax caps each passenger count; larger values are clamped.
const MaxPax = 999

// TimestampLayout matches the ISO-8601 strings browsers produce with
// Date.toISOString, which the spreadsheet backend uses as its row key.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Enquiry struct {
	ID        string    `json:"id,omitempty" doc:"Backend-assigned identifier"`
	LocalID   string    `json:"localId,omitempty" doc:"Identifier assigned by the local mirror"`
	Timestamp time.Time `json:"timestamp,omitempty" doc:"Creation time"`

	EnquiryType   Type   `json:"enquiryType,omitempty" enum:"flight,hotel,package"`
	EnquiryName   string `json:"enquiryName,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Channel       string `json:"channel,omitempty"`
	Reference     string `json:"reference,omitempty"`

	NumAdults   int `json:"numAdults,omitempty" minimum:"0" maximum:"999"`
	NumKids     int `json:"numKids,omitempty" minimum:"0" maximum:"999"`
	NumInfants  int `json:"numInfants,omitempty" minimum:"0" maximum:"999"`
	NumTotalPax int `json:"numTotalPax,omitempty" minimum:"0" doc:"Always recomputed from the individual counts"`

	FlightDetails  *FlightDetails  `json:"flightDetails,omitempty"`
	HotelDetails   *HotelDetails   `json:"hotelDetails,omitempty"`
	PackageDetails *PackageDetails `json:"packageDetails,omitempty"`

	Notes []Note `json:"notes,omitempty"`
}

type FlightDetails struct {
	TripType         TripType `json:"tripType,omitempty" enum:"One Way,Round Trip,Multi-City"`
	DepartureCity    string   `json:"departureCity,omitempty"`
	ArrivalCity      string   `json:"arrivalCity,omitempty"`
	DepartureDate    Date     `json:"departureDate,omitempty"`
	ReturnDate       Date     `json:"returnDate,omitempty"`
	PreferredAirline string   `json:"preferredAirline,omitempty"`
	Class            string   `json:"class,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

type HotelDetails struct {
	Destination  string `json:"destination,omitempty"`
	CheckinDate  Date   `json:"checkinDate,omitempty"`
	CheckoutDate Date   `json:"checkoutDate,omitempty"`
	NumRooms     int    `json:"numRooms,omitempty" minimum:"0"`
	RoomType     string `json:"roomType,omitempty"`
	StarRating   string `json:"starRating,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type PackageDetails struct {
	Destination   string `json:"destination,omitempty"`
	DepartureDate Date   `json:"departureDate,omitempty"`
	ReturnDate    Date   `json:"returnDate,omitempty"`
	Budget        *Money `json:"budget,omitempty"`
	Interests     string `json:"interests,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Note is a staff comment appended from the dashboard. Slot is only set by
// the spreadsheet backend, where notes live in indexed NotesN columns.
type Note struct {
	ID        string    `json:"id,omitempty"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	Slot      int       `json:"slot,omitempty"`
}

// ClampPax bounds a passenger count to [0, MaxPax].
func ClampPax(n int) int {
	return min(max(n, 0), MaxPax)
}

// Normalize enforces the record invariants: the total passenger count is the
// sum of the individual counts and only the detail block matching
// EnquiryType is kept.
func (e *Enquiry) Normalize() {
	if e.EnquiryType == "" || e.EnquiryType == TypeAll {
		e.EnquiryType = TypeFlight
	}
	e.NumAdults = ClampPax(e.NumAdults)
	e.NumKids = ClampPax(e.NumKids)
	e.NumInfants = ClampPax(e.NumInfants)
	e.NumTotalPax = e.NumAdults + e.NumKids + e.NumInfants

	switch e.EnquiryType {
	case TypeFlight:
		if e.FlightDetails == nil {
			e.FlightDetails = &FlightDetails{}
		}
		e.HotelDetails, e.PackageDetails = nil, nil
	case TypeHotel:
		if e.HotelDetails == nil {
			e.HotelDetails = &HotelDetails{}
		}
		e.FlightDetails, e.PackageDetails = nil, nil
	case TypePackage:
		if e.PackageDetails == nil {
			e.PackageDetails = &PackageDetails{}
		}
		e.FlightDetails, e.HotelDetails = nil, nil
	}
}

// DateRange returns the start and end dates of the active detail block. The
// flight end date is only meaningful for round trips.
func (e Enquiry) DateRange() (start, end Date) {
	switch e.EnquiryType {
	case TypeFlight:
		if f := e.FlightDetails; f != nil {
			start = f.DepartureDate
			if f.TripType == RoundTrip {
				end = f.ReturnDate
			}
		}
	case TypeHotel:
		if h := e.HotelDetails; h != nil {
			start, end = h.CheckinDate, h.CheckoutDate
		}
	case TypePackage:
		if p := e.PackageDetails; p != nil {
			start, end = p.DepartureDate, p.ReturnDate
		}
	}
	return start, end
}

// Key identifies the record on its backend: the assigned ID when present,
// otherwise the creation timestamp.
func (e Enquiry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	if e.Timestamp.IsZero() {
		return ""
	}
	return e.Timestamp.UTC().Format(TimestampLayout)
}
