package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gdg-garage/travel-enquiry-api/internal/apiclient"
	"github.com/gdg-garage/travel-enquiry-api/internal/compose"
	"github.com/gdg-garage/travel-enquiry-api/internal/config"
	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const graphAPIBaseURL = "https://graph.facebook.com/v19.0"

// WhatsAppClient sends text messages through the WhatsApp Cloud API.
type WhatsAppClient struct {
	Token         string
	PhoneNumberID string
	BaseURL       string
	HTTPClient    *http.Client
}

func NewWhatsAppClient(token, phoneNumberID string) *WhatsAppClient {
	return &WhatsAppClient{
		Token:         token,
		PhoneNumberID: phoneNumberID,
		BaseURL:       graphAPIBaseURL,
		HTTPClient:    http.DefaultClient,
	}
}

type GenericMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	RecipientType    string   `json:"recipient_type,omitempty"`
	Text             *TextObj `json:"text,omitempty"`
}

type TextObj struct {
	Body       string `json:"body"`
	PreviewUrl bool   `json:"preview_url,omitempty"`
}

func (c *WhatsAppClient) SendMessage(ctx context.Context, to, body string) error {
	msg := GenericMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               strings.TrimPrefix(to, "+"),
		Type:             "text",
		Text:             &TextObj{Body: body},
	}
	return apiclient.Send(ctx, c.HTTPClient, apiclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/%s/messages", strings.TrimRight(c.BaseURL, "/"), c.PhoneNumberID),
		Header: http.Header{"Authorization": {"Bearer " + c.Token}},
		Body:   msg,
	})
}

// WhatsAppNotifier forwards the vendor message of each saved enquiry to a
// supplier number.
type WhatsAppNotifier struct {
	client *WhatsAppClient
	vendor string
}

func NewWhatsAppNotifier(cfg *config.Config) (*WhatsAppNotifier, error) {
	if cfg.WhatsAppToken == "" || cfg.PhoneNumberID == "" || cfg.VendorWhatsAppNumber == "" {
		return nil, errors.New("whatsapp token, phone number ID and vendor number are required")
	}
	return &WhatsAppNotifier{
		client: NewWhatsAppClient(cfg.WhatsAppToken, cfg.PhoneNumberID),
		vendor: cfg.VendorWhatsAppNumber,
	}, nil
}

func (n *WhatsAppNotifier) NotifyEnquiry(ctx context.Context, e models.Enquiry, res gateway.SubmitResult) error {
	if res.BackendUsed == gateway.BackendNone {
		return nil
	}
	return n.client.SendMessage(ctx, n.vendor, compose.VendorWhatsApp(e))
}

// Multi fans an enquiry out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyEnquiry(ctx context.Context, e models.Enquiry, res gateway.SubmitResult) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyEnquiry(ctx, e, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
