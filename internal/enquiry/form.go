package enquiry

import (
	"strings"
	"time"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// Form carries the raw field values of the enquiry form, named after the
// form inputs. Counts are kept as typed.
type Form struct {
	EnquiryType models.Type `json:"enquiryType,omitempty" enum:"flight,hotel,package" doc:"Active tab"`

	EnquiryName   string `json:"enquiryName,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Channel       string `json:"channel,omitempty"`
	Reference     string `json:"reference,omitempty"`
	NumAdults     string `json:"numAdults,omitempty"`
	NumKids       string `json:"numKids,omitempty"`
	NumInfants    string `json:"numInfants,omitempty"`

	FlightTripType         models.TripType `json:"flightTripType,omitempty" enum:"One Way,Round Trip,Multi-City"`
	FlightDepartureCity    string          `json:"flightDepartureCity,omitempty"`
	FlightArrivalCity      string          `json:"flightArrivalCity,omitempty"`
	FlightDepartureDate    models.Date     `json:"flightDepartureDate,omitempty"`
	FlightReturnDate       models.Date     `json:"flightReturnDate,omitempty"`
	FlightPreferredAirline string          `json:"flightPreferredAirline,omitempty"`
	FlightClass            string          `json:"flightClass,omitempty"`
	FlightNotes            string          `json:"flightNotes,omitempty"`

	HotelDestination  string      `json:"hotelDestination,omitempty"`
	HotelCheckinDate  models.Date `json:"hotelCheckinDate,omitempty"`
	HotelCheckoutDate models.Date `json:"hotelCheckoutDate,omitempty"`
	HotelNumRooms     string      `json:"hotelNumRooms,omitempty"`
	HotelRoomType     string      `json:"hotelRoomType,omitempty"`
	HotelStarRating   string      `json:"hotelStarRating,omitempty"`
	HotelNotes        string      `json:"hotelNotes,omitempty"`

	PackageDestination   string      `json:"packageDestination,omitempty"`
	PackageDepartureDate models.Date `json:"packageDepartureDate,omitempty"`
	PackageReturnDate    models.Date `json:"packageReturnDate,omitempty"`
	PackageBudget        string      `json:"packageBudget,omitempty" pattern:"^[0-9]*(\\.[0-9]+)?$"`
	PackageInterests     string      `json:"packageInterests,omitempty"`
	PackageNotes         string      `json:"packageNotes,omitempty"`
}

// Builder turns form values into records.
type Builder struct {
	Policy   TripTypePolicy
	Currency string
	Now      func() time.Time
}

func NewBuilder(policy TripTypePolicy, currency string) *Builder {
	return &Builder{Policy: policy, Currency: currency, Now: time.Now}
}

// Record builds the record for the active tab. Derived fields are always
// recomputed: the passenger total, and the flight return date, which is
// blanked whenever the trip type disables it.
func (b *Builder) Record(f Form) models.Enquiry {
	e := models.Enquiry{
		Timestamp:     b.Now().UTC(),
		EnquiryType:   f.EnquiryType,
		EnquiryName:   strings.TrimSpace(f.EnquiryName),
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		Email:         strings.TrimSpace(f.Email),
		Address:       strings.TrimSpace(f.Address),
		City:          strings.TrimSpace(f.City),
		Channel:       strings.TrimSpace(f.Channel),
		Reference:     strings.TrimSpace(f.Reference),
		NumAdults:     paxCount(f.NumAdults),
		NumKids:       paxCount(f.NumKids),
		NumInfants:    paxCount(f.NumInfants),
		NumTotalPax:   TotalPax(f.NumAdults, f.NumKids, f.NumInfants),
	}
	if e.EnquiryType == "" {
		e.EnquiryType = models.TypeFlight
	}

	switch e.EnquiryType {
	case models.TypeFlight:
		tripType := f.FlightTripType
		if tripType == "" {
			tripType = models.OneWay
		}
		returnDate := f.FlightReturnDate
		if b.Policy.Gate(tripType).Disabled {
			returnDate = ""
		}
		e.FlightDetails = &models.FlightDetails{
			TripType:         tripType,
			DepartureCity:    strings.TrimSpace(f.FlightDepartureCity),
			ArrivalCity:      strings.TrimSpace(f.FlightArrivalCity),
			DepartureDate:    f.FlightDepartureDate,
			ReturnDate:       returnDate,
			PreferredAirline: strings.TrimSpace(f.FlightPreferredAirline),
			Class:            strings.TrimSpace(f.FlightClass),
			Notes:            strings.TrimSpace(f.FlightNotes),
		}
	case models.TypeHotel:
		e.HotelDetails = &models.HotelDetails{
			Destination:  strings.TrimSpace(f.HotelDestination),
			CheckinDate:  f.HotelCheckinDate,
			CheckoutDate: f.HotelCheckoutDate,
			NumRooms:     paxCount(f.HotelNumRooms),
			RoomType:     strings.TrimSpace(f.HotelRoomType),
			StarRating:   strings.TrimSpace(f.HotelStarRating),
			Notes:        strings.TrimSpace(f.HotelNotes),
		}
	case models.TypePackage:
		p := &models.PackageDetails{
			Destination:   strings.TrimSpace(f.PackageDestination),
			DepartureDate: f.PackageDepartureDate,
			ReturnDate:    f.PackageReturnDate,
			Interests:     strings.TrimSpace(f.PackageInterests),
			Notes:         strings.TrimSpace(f.PackageNotes),
		}
		if strings.TrimSpace(f.PackageBudget) != "" {
			// Non-numeric budgets are rejected by the schema pattern.
			if budget, err := models.NewMoney(f.PackageBudget, b.Currency); err == nil {
				p.Budget = budget
			}
		}
		e.PackageDetails = p
	}
	return e
}
