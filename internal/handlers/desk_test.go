package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/travel-enquiry-api/internal/auth"
	"github.com/gdg-garage/travel-enquiry-api/internal/compose"
	"github.com/gdg-garage/travel-enquiry-api/internal/config"
	"github.com/gdg-garage/travel-enquiry-api/internal/dashboard"
	"github.com/gdg-garage/travel-enquiry-api/internal/enquiry"
	"github.com/gdg-garage/travel-enquiry-api/internal/gateway"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

type recordingNotifier struct {
	mu   sync.Mutex
	seen []models.Enquiry
	done chan struct{}
}

func (r *recordingNotifier) NotifyEnquiry(_ context.Context, e models.Enquiry, _ gateway.SubmitResult) error {
	r.mu.Lock()
	r.seen = append(r.seen, e)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

type deskEnv struct {
	srv      *httptest.Server
	mirror   *gateway.Mirror
	notifier *recordingNotifier
	auth     *auth.AuthHandler
}

// newDeskEnv serves the relational backend and the desk from one server,
// with the desk's gateway pointed back at the server's own /api routes.
func newDeskEnv(t *testing.T, backendURL func(srvURL string) string) *deskEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret"}
	db := setupTestDB(t)

	r := chi.NewRouter()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	mirror := gateway.NewMirror(filepath.Join(t.TempDir(), "data.json"))
	backend := gateway.NewRESTBackend(backendURL(srv.URL), srv.Client())
	builder := enquiry.NewBuilder(enquiry.NewTripTypePolicy(true), "INR")
	builder.Now = func() time.Time { return time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC) }
	n := &recordingNotifier{done: make(chan struct{}, 8)}
	authHandler := auth.NewAuthHandler(cfg, db)

	desk := NewDeskHandler(builder, compose.Options{IncludeContactDetails: true}, gateway.New(backend, mirror), dashboard.NewReader(backend), n)
	RegisterRoutes(r, authHandler, NewEnquiryHandler(db), desk, NewAPIKeyHandler(db), false)

	return &deskEnv{srv: srv, mirror: mirror, notifier: n, auth: authHandler}
}

func (env *deskEnv) do(t *testing.T, method, path string, body any, staff bool) (*http.Response, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, env.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if staff {
		token, err := env.auth.GenerateToken("priya")
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	resp, err := env.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func hotelForm() enquiry.Form {
	return enquiry.Form{
		EnquiryType:       models.TypeHotel,
		EnquiryName:       "Ravi",
		ContactNumber:     "9000000000",
		Email:             "ravi@example.com",
		Channel:           "Walk-in",
		NumAdults:         "2",
		NumKids:           "1",
		HotelDestination:  "Jaipur",
		HotelCheckinDate:  "2025-02-10",
		HotelCheckoutDate: "2025-02-12",
		HotelNumRooms:     "1",
		HotelRoomType:     "Deluxe",
	}
}

func selfBackend(srvURL string) string { return srvURL + "/api/enquiries" }

func TestDeskPreview(t *testing.T) {
	env := newDeskEnv(t, selfBackend)

	form := hotelForm()
	form.HotelCheckoutDate = "2025-02-08"
	resp, body := env.do(t, http.MethodPost, "/desk/preview", form, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "2025-01-02", body["minDate"])
	assert.Equal(t, "Check-out date cannot be before check-in date.", body["validationError"])
	record := body["record"].(map[string]any)
	assert.EqualValues(t, 3, record["numTotalPax"])
	messages := body["messages"].(map[string]any)
	assert.Equal(t, "Travel Enquiry - Hotel - Ravi - February 10, 2025 - February 8, 2025", messages["subject"])
	assert.NotContains(t, messages["vendorWhatsApp"], "ravi@example.com")
	assert.Empty(t, mirrorRecords(t, env.mirror))
}

func TestDeskSubmitAndDashboard(t *testing.T) {
	env := newDeskEnv(t, selfBackend)

	resp, body := env.do(t, http.MethodPost, "/desk/submit", hotelForm(), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "remote", body["backendUsed"])
	assert.Equal(t, "1", body["id"])
	assert.Equal(t, true, body["resetForm"])
	notice := body["notice"].(map[string]any)
	assert.EqualValues(t, 3000, notice["dismissAfterMs"])

	select {
	case <-env.notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	assert.Len(t, mirrorRecords(t, env.mirror), 1)

	// Dashboard requires staff.
	resp, _ = env.do(t, http.MethodGet, "/desk/enquiries", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/desk/enquiries?type=hotel&search=jaip", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["hotelCount"])
	assert.EqualValues(t, 1, stats["total"])

	note := map[string]string{"type": "hotel", "id": "1", "text": "sent options"}
	resp, body = env.do(t, http.MethodPost, "/desk/enquiry/notes", note, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := body["notes"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, "priya", notes[0].(map[string]any)["author"])

	resp, body = env.do(t, http.MethodGet, "/desk/enquiries?refresh=true", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Len(t, data[0].(map[string]any)["notes"], 1)

	resp, _ = env.do(t, http.MethodGet, "/desk/enquiry?type=flight&id=1", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeskSubmitValidation(t *testing.T) {
	env := newDeskEnv(t, selfBackend)

	form := hotelForm()
	form.Email = ""
	resp, body := env.do(t, http.MethodPost, "/desk/submit", form, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "Please fill in all required fields")
	assert.Empty(t, mirrorRecords(t, env.mirror))
}

func TestDeskSubmitFallsBackWhenBackendFails(t *testing.T) {
	env := newDeskEnv(t, func(srvURL string) string { return srvURL + "/missing" })

	resp, body := env.do(t, http.MethodPost, "/desk/submit", hotelForm(), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "local", body["backendUsed"])
	assert.Equal(t, false, body["resetForm"])
	assert.Len(t, mirrorRecords(t, env.mirror), 1)

	resp, _ = env.do(t, http.MethodGet, "/desk/enquiries", nil, true)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestDeskMirrorRoutes(t *testing.T) {
	env := newDeskEnv(t, selfBackend)
	for range 2 {
		resp, _ := env.do(t, http.MethodPost, "/desk/submit", hotelForm(), false)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodGet, "/desk/mirror?search=ravi", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["count"])

	resp, exported := env.do(t, http.MethodGet, "/desk/mirror/export", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "Travel Enquiry Form Data Storage", exported["description"])

	localID := mirrorRecords(t, env.mirror)[0].LocalID
	resp, _ = env.do(t, http.MethodDelete, "/desk/mirror/"+localID, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, "/desk/mirror/"+localID, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/desk/mirror", nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, mirrorRecords(t, env.mirror))

	resp, body = env.do(t, http.MethodPost, "/desk/mirror/import", exported, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["imported"])

	resp, _ = env.do(t, http.MethodPost, "/desk/mirror/import", map[string]any{"other": 1}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func mirrorRecords(t *testing.T, m *gateway.Mirror) []models.Enquiry {
	t.Helper()
	all, err := m.All()
	require.NoError(t, err)
	return all
}
