package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContactFields are the columns shared by every category table.
type ContactFields struct {
	EnquiryName   string `json:"enquiryName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Channel       string `json:"channel"`
	Reference     string `json:"reference"`
	NumAdults     int    `json:"numAdults"`
	NumKids       int    `json:"numKids"`
	NumInfants    int    `json:"numInfants"`
	NumTotalPax   int    `json:"numTotalPax"`
	SubmittedAt   time.Time
}

type FlightEnquiry struct {
	gorm.Model
	ContactFields          `gorm:"embedded"`
	FlightTripType         string `gorm:"type:varchar(20)"`
	FlightDepartureCity    string
	FlightArrivalCity      string
	FlightDepartureDate    Date `gorm:"type:varchar(10)"`
	FlightReturnDate       Date `gorm:"type:varchar(10)"`
	FlightPreferredAirline string
	FlightClass            string `gorm:"type:varchar(30)"`
	Notes                  string `gorm:"type:text"`
}

func (FlightEnquiry) TableName() string {
	return "flight"
}

type HotelEnquiry struct {
	gorm.Model
	ContactFields     `gorm:"embedded"`
	HotelDestination  string
	HotelCheckinDate  Date `gorm:"type:varchar(10)"`
	HotelCheckoutDate Date `gorm:"type:varchar(10)"`
	HotelNumRooms     int
	HotelRoomType     string
	HotelStarRating   string
	Notes             string `gorm:"type:text"`
}

func (HotelEnquiry) TableName() string {
	return "hotel"
}

// TripEnquiry holds package enquiries; the table keeps its historical name.
type TripEnquiry struct {
	gorm.Model
	ContactFields         `gorm:"embedded"`
	PackageDestination    string
	PackageDepartureDate  Date                `gorm:"type:varchar(10)"`
	PackageReturnDate     Date                `gorm:"type:varchar(10)"`
	PackageBudget         decimal.NullDecimal `gorm:"type:decimal(14,2)"`
	PackageBudgetCurrency string              `gorm:"type:varchar(3)"`
	PackageInterests      string
	Notes                 string `gorm:"type:text"`
}

func (TripEnquiry) TableName() string {
	return "trip"
}

func contactFieldsOf(e Enquiry) ContactFields {
	submitted := e.Timestamp
	if submitted.IsZero() {
		submitted = time.Now().UTC()
	}
	return ContactFields{
		EnquiryName:   e.EnquiryName,
		ContactNumber: e.ContactNumber,
		Email:         e.Email,
		City:          e.City,
		Address:       e.Address,
		Channel:       e.Channel,
		Reference:     e.Reference,
		NumAdults:     e.NumAdults,
		NumKids:       e.NumKids,
		NumInfants:    e.NumInfants,
		NumTotalPax:   e.NumTotalPax,
		SubmittedAt:   submitted,
	}
}

func (c ContactFields) enquiry(id uint, t Type) Enquiry {
	return Enquiry{
		ID:            strconv.FormatUint(uint64(id), 10),
		Timestamp:     c.SubmittedAt,
		EnquiryType:   t,
		EnquiryName:   c.EnquiryName,
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
		Address:       c.Address,
		City:          c.City,
		Channel:       c.Channel,
		Reference:     c.Reference,
		NumAdults:     c.NumAdults,
		NumKids:       c.NumKids,
		NumInfants:    c.NumInfants,
		NumTotalPax:   c.NumTotalPax,
	}
}

func NewFlightEnquiry(e Enquiry) FlightEnquiry {
	row := FlightEnquiry{ContactFields: contactFieldsOf(e), FlightTripType: string(OneWay), FlightClass: "Economy"}
	if f := e.FlightDetails; f != nil {
		if f.TripType != "" {
			row.FlightTripType = string(f.TripType)
		}
		if f.Class != "" {
			row.FlightClass = f.Class
		}
		row.FlightDepartureCity = f.DepartureCity
		row.FlightArrivalCity = f.ArrivalCity
		row.FlightDepartureDate = f.DepartureDate
		row.FlightReturnDate = f.ReturnDate
		row.FlightPreferredAirline = f.PreferredAirline
		row.Notes = f.Notes
	}
	return row
}

func (r FlightEnquiry) Enquiry() Enquiry {
	e := r.ContactFields.enquiry(r.ID, TypeFlight)
	e.FlightDetails = &FlightDetails{
		TripType:         TripType(r.FlightTripType),
		DepartureCity:    r.FlightDepartureCity,
		ArrivalCity:      r.FlightArrivalCity,
		DepartureDate:    r.FlightDepartureDate,
		ReturnDate:       r.FlightReturnDate,
		PreferredAirline: r.FlightPreferredAirline,
		Class:            r.FlightClass,
		Notes:            r.Notes,
	}
	return e
}

func NewHotelEnquiry(e Enquiry) HotelEnquiry {
	row := HotelEnquiry{ContactFields: contactFieldsOf(e), HotelNumRooms: 1, HotelRoomType: "Standard", HotelStarRating: "Any"}
	if h := e.HotelDetails; h != nil {
		if h.NumRooms > 0 {
			row.HotelNumRooms = h.NumRooms
		}
		if h.RoomType != "" {
			row.HotelRoomType = h.RoomType
		}
		if h.StarRating != "" {
			row.HotelStarRating = h.StarRating
		}
		row.HotelDestination = h.Destination
		row.HotelCheckinDate = h.CheckinDate
		row.HotelCheckoutDate = h.CheckoutDate
		row.Notes = h.Notes
	}
	return row
}

func (r HotelEnquiry) Enquiry() Enquiry {
	e := r.ContactFields.enquiry(r.ID, TypeHotel)
	e.HotelDetails = &HotelDetails{
		Destination:  r.HotelDestination,
		CheckinDate:  r.HotelCheckinDate,
		CheckoutDate: r.HotelCheckoutDate,
		NumRooms:     r.HotelNumRooms,
		RoomType:     r.HotelRoomType,
		StarRating:   r.HotelStarRating,
		Notes:        r.Notes,
	}
	return e
}

func NewTripEnquiry(e Enquiry) TripEnquiry {
	row := TripEnquiry{ContactFields: contactFieldsOf(e)}
	if p := e.PackageDetails; p != nil {
		row.PackageDestination = p.Destination
		row.PackageDepartureDate = p.DepartureDate
		row.PackageReturnDate = p.ReturnDate
		if p.Budget != nil {
			row.PackageBudget = decimal.NewNullDecimal(p.Budget.Amount)
			row.PackageBudgetCurrency = p.Budget.Currency
		}
		row.PackageInterests = p.Interests
		row.Notes = p.Notes
	}
	return row
}

func (r TripEnquiry) Enquiry() Enquiry {
	e := r.ContactFields.enquiry(r.ID, TypePackage)
	e.PackageDetails = &PackageDetails{
		Destination:   r.PackageDestination,
		DepartureDate: r.PackageDepartureDate,
		ReturnDate:    r.PackageReturnDate,
		Interests:     r.PackageInterests,
		Notes:         r.Notes,
	}
	if r.PackageBudget.Valid {
		e.PackageDetails.Budget = &Money{Amount: r.PackageBudget.Decimal, Currency: r.PackageBudgetCurrency}
	}
	return e
}
