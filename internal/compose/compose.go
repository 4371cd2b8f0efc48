// Package compose renders an enquiry as text: the email subject and body,
// and the WhatsApp messages for the customer and for suppliers. Every
// function is pure; the same record always renders to the same text.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const (
	notAvailable   = "N/A"
	defaultName    = "Enquiry Person"
	longDateLayout = "January 2, 2006"
)

// Options selects the email body variant. Without contact details the
// body leaves out name, contact number, email and address: the subject
// line and the sign-off use a neutral name instead.
type Options struct {
	IncludeContactDetails bool
}

// Messages is every text artifact derived from one record.
type Messages struct {
	Subject          string `json:"subject"`
	EmailBody        string `json:"emailBody"`
	CustomerWhatsApp string `json:"customerWhatsApp"`
	VendorWhatsApp   string `json:"vendorWhatsApp"`
}

func All(e models.Enquiry, opts Options) Messages {
	return Messages{
		Subject:          Subject(e),
		EmailBody:        EmailBody(e, opts),
		CustomerWhatsApp: CustomerWhatsApp(e),
		VendorWhatsApp:   VendorWhatsApp(e),
	}
}

// FormatDate renders a date in long form ("January 5, 2025"), or "N/A" when
// it is absent or unparsable.
func FormatDate(d models.Date) string {
	t, ok := d.Time()
	if !ok {
		return notAvailable
	}
	return t.Format(longDateLayout)
}

func Subject(e models.Enquiry) string {
	start, end := e.DateRange()
	startText, endText := FormatDate(start), FormatDate(end)

	subject := fmt.Sprintf("Travel Enquiry - %s - %s", e.EnquiryType.Title(), displayName(e))
	if startText != notAvailable {
		subject += " - " + startText
	}
	if endText != notAvailable && endText != startText {
		subject += " - " + endText
	}
	return subject
}

func EmailBody(e models.Enquiry, opts Options) string {
	subjectRecord, name := e, displayName(e)
	if !opts.IncludeContactDetails {
		subjectRecord.EnquiryName = ""
		name = defaultName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n\n", Subject(subjectRecord))
	b.WriteString("Dear Travel Agency,\n\n")
	fmt.Fprintf(&b, "I would like to make an enquiry for a %s booking based on the following details:\n\n", e.EnquiryType)

	b.WriteString("--- Your Details ---\n")
	if opts.IncludeContactDetails {
		fmt.Fprintf(&b, "Name: %s\n", name)
		fmt.Fprintf(&b, "Contact Number(s): %s\n", orNA(e.ContactNumber))
		fmt.Fprintf(&b, "Email: %s\n", orNA(e.Email))
		fmt.Fprintf(&b, "Address: %s\n", orNA(e.Address))
	}
	fmt.Fprintf(&b, "City: %s\n", orNA(e.City))
	fmt.Fprintf(&b, "Channel: %s\n", orNA(e.Channel))
	fmt.Fprintf(&b, "Reference: %s\n", orNA(e.Reference))
	fmt.Fprintf(&b, "Total Passengers: %d\n", e.NumTotalPax)
	fmt.Fprintf(&b, "  - Adults: %d\n", e.NumAdults)
	fmt.Fprintf(&b, "  - Kids: %d\n", e.NumKids)
	fmt.Fprintf(&b, "  - Infants: %d\n\n", e.NumInfants)

	b.WriteString(BookingDetails(e, false))

	b.WriteString("\nKindly provide suitable options and quotes for this enquiry.\n\n")
	fmt.Fprintf(&b, "Thank you,\n%s", name)
	return b.String()
}

// CustomerWhatsApp is the full-detail message the customer copies into a
// chat with the agency.
func CustomerWhatsApp(e models.Enquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 *Travel Enquiry - %s*\n\n", e.EnquiryType.Title())
	fmt.Fprintf(&b, "👤 *Name:* %s\n", displayName(e))
	fmt.Fprintf(&b, "📞 *Contact:* %s\n", orNA(e.ContactNumber))
	fmt.Fprintf(&b, "📧 *Email:* %s\n", orNA(e.Email))
	if e.Address != "" {
		fmt.Fprintf(&b, "🏠 *Address:* %s\n", e.Address)
	}
	fmt.Fprintf(&b, "🌆 *City:* %s\n", orNA(e.City))
	fmt.Fprintf(&b, "🔗 *Channel:* %s\n", orNA(e.Channel))
	if e.Reference != "" {
		fmt.Fprintf(&b, "📝 *Reference:* %s\n", e.Reference)
	}
	b.WriteString(passengerLine(e))
	b.WriteString("\n")
	b.WriteString(BookingDetails(e, true))
	b.WriteString("\nPlease share suitable options and quotes. Thank you! 🙏")
	return b.String()
}

// VendorWhatsApp is the message forwarded to a supplier. It carries no
// contact-identifying fields, and any contact number or email that found
// its way into free-text fields is masked.
func VendorWhatsApp(e models.Enquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 *New Travel Enquiry - %s*\n\n", e.EnquiryType.Title())
	fmt.Fprintf(&b, "🌆 *City:* %s\n", orNA(e.City))
	b.WriteString(passengerLine(e))
	b.WriteString("\n")
	b.WriteString(BookingDetails(e, true))
	b.WriteString("\nKindly share your best rates and availability.")
	return redact(b.String(), e.ContactNumber, e.Email)
}

// BookingDetails renders the block for the active category. With emphasize
// set, labels are wrapped in WhatsApp bold markers.
func BookingDetails(e models.Enquiry, emphasize bool) string {
	var b strings.Builder
	header := func(icon, title string) {
		if emphasize {
			fmt.Fprintf(&b, "%s *%s*\n", icon, title)
			return
		}
		fmt.Fprintf(&b, "--- %s ---\n", title)
	}
	line := func(label, value string) {
		if emphasize {
			fmt.Fprintf(&b, "*%s:* %s\n", label, value)
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	switch e.EnquiryType {
	case models.TypeFlight:
		f := e.FlightDetails
		if f == nil {
			f = &models.FlightDetails{}
		}
		header("✈️", "Flight Booking Details")
		line("Trip Type", orNA(string(f.TripType)))
		line("Departure City", orNA(f.DepartureCity))
		line("Arrival City", orNA(f.ArrivalCity))
		line("Departure Date", FormatDate(f.DepartureDate))
		switch f.TripType {
		case models.RoundTrip:
			line("Return Date", FormatDate(f.ReturnDate))
		case models.MultiCity:
			line("Return Date", "Not Applicable (Multi-City)")
		}
		line("Preferred Airline", orDefault(f.PreferredAirline, "Any"))
		line("Class", orNA(f.Class))
		if f.Notes != "" {
			line("Notes", f.Notes)
		}
	case models.TypeHotel:
		h := e.HotelDetails
		if h == nil {
			h = &models.HotelDetails{}
		}
		header("🏨", "Hotel Booking Details")
		line("Destination/Hotel Name", orNA(h.Destination))
		line("Check-in Date", FormatDate(h.CheckinDate))
		line("Check-out Date", FormatDate(h.CheckoutDate))
		rooms := notAvailable
		if h.NumRooms > 0 {
			rooms = strconv.Itoa(h.NumRooms)
		}
		line("Number of Rooms", rooms)
		line("Room Type", orNA(h.RoomType))
		line("Star Rating Preference", orDefault(h.StarRating, "Any"))
		if h.Notes != "" {
			line("Notes", h.Notes)
		}
	case models.TypePackage:
		p := e.PackageDetails
		if p == nil {
			p = &models.PackageDetails{}
		}
		header("🎒", "Trip Package Details")
		line("Destination/Package Name", orNA(p.Destination))
		line("Departure Date", FormatDate(p.DepartureDate))
		line("Return Date", FormatDate(p.ReturnDate))
		budget := notAvailable
		if p.Budget != nil {
			budget = p.Budget.String()
		}
		line("Budget", budget)
		line("Interests/Activities", orNA(p.Interests))
		if p.Notes != "" {
			line("Notes", p.Notes)
		}
	}
	return b.String()
}

func passengerLine(e models.Enquiry) string {
	return fmt.Sprintf("👥 *Passengers:* %d (Adults: %d, Kids: %d, Infants: %d)\n",
		e.NumTotalPax, e.NumAdults, e.NumKids, e.NumInfants)
}

func displayName(e models.Enquiry) string {
	return orDefault(e.EnquiryName, defaultName)
}

func orNA(s string) string {
	return orDefault(s, notAvailable)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func redact(text string, secrets ...string) string {
	for _, s := range secrets {
		if s = strings.TrimSpace(s); s != "" {
			text = strings.ReplaceAll(text, s, "[redacted]")
		}
	}
	return text
}
