package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gdg-garage/travel-enquiry-api/internal/apiclient"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

// RESTBackend talks to the relational enquiry API served by
// handlers.RegisterEnquiryRoutes, locally or on another instance.
type RESTBackend struct {
	Endpoint string
	client   *http.Client
}

func NewRESTBackend(endpoint string, client *http.Client) *RESTBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTBackend{Endpoint: strings.TrimRight(endpoint, "/"), client: client}
}

type restSaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      any    `json:"id"`
}

type restListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []models.Enquiry `json:"data"`
	Count   int              `json:"count"`
}

type restNoteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Note    models.Note `json:"note"`
}

func (r *RESTBackend) Name() string {
	return "rest"
}

func (r *RESTBackend) Write(ctx context.Context, e models.Enquiry) (string, error) {
	var resp restSaveResponse
	if err := apiclient.Send(ctx, r.client, apiclient.Request{Method: http.MethodPost, URL: r.Endpoint, Body: e, Out: &resp}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}
	if !resp.Success {
		return "", fmt.Errorf("%w: %s", ErrRemoteWrite, resp.Message)
	}
	return idString(resp.ID), nil
}

func (r *RESTBackend) ReadAll(ctx context.Context, t models.Type) ([]models.Enquiry, error) {
	if t == "" {
		t = models.TypeAll
	}
	target := r.Endpoint + "?" + url.Values{"type": {string(t)}}.Encode()

	var resp restListResponse
	if err := apiclient.Send(ctx, r.client, apiclient.Request{Method: http.MethodGet, URL: target, Out: &resp}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteRead, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrRemoteRead, resp.Message)
	}
	if resp.Data == nil {
		resp.Data = []models.Enquiry{}
	}
	return resp.Data, nil
}

func (r *RESTBackend) AppendNote(ctx context.Context, e models.Enquiry, n models.Note) (models.Enquiry, error) {
	if e.ID == "" {
		return e, fmt.Errorf("%w: record has no backend id", ErrNotFound)
	}
	target := fmt.Sprintf("%s/%s/%s/notes", r.Endpoint, e.EnquiryType, url.PathEscape(e.ID))

	var resp restNoteResponse
	body := struct {
		Author string `json:"author,omitempty"`
		Text   string `json:"text"`
	}{n.Author, n.Text}
	if err := apiclient.Send(ctx, r.client, apiclient.Request{Method: http.MethodPost, URL: target, Body: body, Out: &resp}); err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return e, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return e, fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}
	if !resp.Success {
		return e, fmt.Errorf("%w: %s", ErrRemoteWrite, resp.Message)
	}

	e.Notes = append(slices.Clone(e.Notes), resp.Note)
	return e, nil
}

func idString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
