package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/travel-enquiry-api/internal/compose"
	"github.com/gdg-garage/travel-enquiry-api/internal/config"
	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// Notifier announces a submitted enquiry. Failures are reported to the
// caller, which logs them; they never undo a submission.
type Notifier interface {
	NotifyEnquiry(ctx context.Context, e models.Enquiry, res gateway.SubmitResult) error
}

type channelSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   channelSender
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, errors.New("discord bot token is empty")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: cfg.DiscordNotificationsChannelID}, nil
}

func (n *DiscordNotifier) NotifyEnquiry(ctx context.Context, e models.Enquiry, res gateway.SubmitResult) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, discordMessage(e, res), discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

// discordMessage is the staff channel summary. It carries no contact
// details.
func discordMessage(e models.Enquiry, res gateway.SubmitResult) string {
	saved := "saved remotely"
	switch res.BackendUsed {
	case gateway.BackendLocal:
		saved = "⚠️ saved on the desk only, remote write failed"
	case gateway.BackendNone:
		saved = "❌ not saved"
	}
	if res.ID != "" {
		saved += fmt.Sprintf(" (ID %s)", res.ID)
	}

	start, end := e.DateRange()
	dates := compose.FormatDate(start)
	if !end.IsZero() && end != start {
		dates += " - " + compose.FormatDate(end)
	}

	return fmt.Sprintf("📨 **New %s Enquiry**\n**Status:** %s\n**Where:** %s\n**Dates:** %s\n**Passengers:** %d\n**Channel:** %s",
		e.EnquiryType.Title(),
		saved,
		destination(e),
		dates,
		e.NumTotalPax,
		e.Channel,
	)
}

func destination(e models.Enquiry) string {
	switch {
	case e.FlightDetails != nil:
		return fmt.Sprintf("%s → %s", e.FlightDetails.DepartureCity, e.FlightDetails.ArrivalCity)
	case e.HotelDetails != nil:
		return e.HotelDetails.Destination
	case e.PackageDetails != nil:
		return e.PackageDetails.Destination
	}
	return "N/A"
}
