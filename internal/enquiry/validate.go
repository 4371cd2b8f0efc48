package enquiry

import (
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// ValidationError reports the first failing validation group with one
// aggregated message.
type ValidationError struct {
	Group   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateCommon(e models.Enquiry) error {
	if e.EnquiryName == "" || e.ContactNumber == "" || e.Email == "" || e.Channel == "" {
		return &ValidationError{
			Group:   "common",
			Message: "Please fill in all required fields (Name, Contact Number, Email, Channel)",
		}
	}
	return nil
}

func ValidateVariant(e models.Enquiry) error {
	switch e.EnquiryType {
	case models.TypeFlight:
		f := e.FlightDetails
		if f == nil || f.DepartureCity == "" || f.ArrivalCity == "" || f.DepartureDate.IsZero() || f.Class == "" {
			return &ValidationError{
				Group:   string(models.TypeFlight),
				Message: "Please fill in all required flight details (Departure City, Arrival City, Departure Date, Class)",
			}
		}
		if f.TripType == models.RoundTrip && f.ReturnDate.IsZero() {
			return &ValidationError{
				Group:   string(models.TypeFlight),
				Message: "Please provide a return date for a round trip",
			}
		}
	case models.TypeHotel:
		h := e.HotelDetails
		if h == nil || h.Destination == "" || h.CheckinDate.IsZero() || h.CheckoutDate.IsZero() || h.NumRooms <= 0 || h.RoomType == "" {
			return &ValidationError{
				Group:   string(models.TypeHotel),
				Message: "Please fill in all required hotel details (Destination, Check-in Date, Check-out Date, Number of Rooms, Room Type)",
			}
		}
	case models.TypePackage:
		p := e.PackageDetails
		if p == nil || p.Destination == "" || p.DepartureDate.IsZero() || p.ReturnDate.IsZero() {
			return &ValidationError{
				Group:   string(models.TypePackage),
				Message: "Please fill in all required package details (Destination, Departure Date, Return Date)",
			}
		}
	default:
		return &ValidationError{Group: "type", Message: "Unknown enquiry type"}
	}
	return nil
}

// ValidateDates turns the first failing date-ordering check into a
// submission error.
func ValidateDates(e models.Enquiry) error {
	for _, check := range CheckDates(e) {
		if !check.Valid {
			return &ValidationError{Group: "dates", Message: check.Message}
		}
	}
	return nil
}

// Validate gates submission: common fields, then the active detail block,
// then date ordering. It stops at the first failing group.
func Validate(e models.Enquiry) error {
	if err := ValidateCommon(e); err != nil {
		return err
	}
	if err := ValidateVariant(e); err != nil {
		return err
	}
	return ValidateDates(e)
}
