// Package enquiry holds the form-side rules of an enquiry: derived fields,
// trip-type gating, date-ordering checks, record building and submission
// validation.
package enquiry

import (
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// TotalPax sums the three passenger inputs. Missing, non-numeric and
// negative values count as zero; values above models.MaxPax count as
// models.MaxPax.
func TotalPax(adults, kids, infants string) int {
	return paxCount(adults) + paxCount(kids) + paxCount(infants)
}

func paxCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return models.ClampPax(n)
}

// ReturnDateState is the gating of the flight return-date input.
type ReturnDateState struct {
	Disabled bool `json:"disabled"`
	Required bool `json:"required"`
}

// TripTypePolicy maps each trip type to its return-date state. Multi-City
// gating is chosen by the caller.
type TripTypePolicy struct {
	states map[models.TripType]ReturnDateState
}

func NewTripTypePolicy(multiCityDisablesReturn bool) TripTypePolicy {
	return TripTypePolicy{states: map[models.TripType]ReturnDateState{
		models.OneWay:    {Disabled: true},
		models.RoundTrip: {Required: true},
		models.MultiCity: {Disabled: multiCityDisablesReturn},
	}}
}

// Gate returns the return-date state for a trip type. Unknown trip types
// leave the input enabled and optional.
func (p TripTypePolicy) Gate(t models.TripType) ReturnDateState {
	return p.states[t]
}

// DateCheck is the outcome of one start/end ordering check.
type DateCheck struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateDateOrdering flags an end date strictly before its start date.
// Absent dates are always valid.
func ValidateDateOrdering(field string, start, end models.Date, message string) DateCheck {
	if end.Before(start) {
		return DateCheck{Field: field, Valid: false, Message: message}
	}
	return DateCheck{Field: field, Valid: true}
}

// CheckDates runs the ordering check for the date pair of the active
// detail block.
func CheckDates(e models.Enquiry) []DateCheck {
	switch e.EnquiryType {
	case models.TypeFlight:
		if f := e.FlightDetails; f != nil {
			return []DateCheck{ValidateDateOrdering("flightReturnDate", f.DepartureDate, f.ReturnDate,
				"Return date cannot be before departure date.")}
		}
	case models.TypeHotel:
		if h := e.HotelDetails; h != nil {
			return []DateCheck{ValidateDateOrdering("hotelCheckoutDate", h.CheckinDate, h.CheckoutDate,
				"Check-out date cannot be before check-in date.")}
		}
	case models.TypePackage:
		if p := e.PackageDetails; p != nil {
			return []DateCheck{ValidateDateOrdering("packageReturnDate", p.DepartureDate, p.ReturnDate,
				"Return date cannot be before departure date.")}
		}
	}
	return nil
}

// MinSelectableDate is the earliest date the form offers: today, in UTC.
func MinSelectableDate(now time.Time) models.Date {
	return models.DateOf(now.UTC())
}
