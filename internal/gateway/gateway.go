package gateway

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const (
	BackendRemote = "remote"
	BackendLocal  = "local"
	BackendNone   = "none"

	// NoticeDuration is how long a submit notice stays on screen.
	NoticeDuration = 3 * time.Second
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is the non-blocking message shown after a submit. It dismisses
// itself after DismissAfter.
type Notice struct {
	Message        string        `json:"message"`
	Level          Level         `json:"level" enum:"success,warning,error"`
	DismissAfter   time.Duration `json:"-"`
	DismissAfterMs int64         `json:"dismissAfterMs"`
}

func newNotice(level Level, message string) Notice {
	return Notice{
		Message:        message,
		Level:          level,
		DismissAfter:   NoticeDuration,
		DismissAfterMs: NoticeDuration.Milliseconds(),
	}
}

// SubmitResult describes where a submission ended up. OK is only true when
// the remote backend accepted the record; ResetForm follows OK.
type SubmitResult struct {
	OK          bool   `json:"ok"`
	BackendUsed string `json:"backendUsed" enum:"remote,local,none"`
	ID          string `json:"id,omitempty"`
	LocalID     string `json:"localId,omitempty"`
	Err         error  `json:"-"`
	Error       string `json:"error,omitempty"`
	Notice      Notice `json:"notice"`
	ResetForm   bool   `json:"resetForm"`
}

var errNoBackend = errors.New("no remote backend configured")

// Gateway writes to the configured remote backend and always mirrors the
// record locally. There are no retries.
type Gateway struct {
	Backend Backend
	Mirror  *Mirror
	Now     func() time.Time
}

func New(backend Backend, mirror *Mirror) *Gateway {
	return &Gateway{Backend: backend, Mirror: mirror, Now: time.Now}
}

// Submit persists e. A failed remote write falls back to the mirror; a
// failed mirror write after a remote success is logged and otherwise
// ignored.
func (g *Gateway) Submit(ctx context.Context, e models.Enquiry) SubmitResult {
	if e.Timestamp.IsZero() {
		e.Timestamp = g.Now().UTC()
	}
	e.Normalize()

	var (
		id       string
		writeErr = errNoBackend
	)
	if g.Backend != nil {
		id, writeErr = g.Backend.Write(ctx, e)
	}

	if writeErr == nil {
		e.ID = id
		local, err := g.Mirror.Append(e)
		if err != nil {
			log.Printf("Failed to mirror enquiry %s locally: %v", id, err)
		}
		return SubmitResult{
			OK:          true,
			BackendUsed: BackendRemote,
			ID:          id,
			LocalID:     local.LocalID,
			Notice:      newNotice(LevelSuccess, "✅ Enquiry saved!"),
			ResetForm:   true,
		}
	}

	log.Printf("Error saving enquiry to %s backend: %v", g.backendName(), writeErr)
	local, mirrorErr := g.Mirror.Append(e)
	if mirrorErr != nil {
		log.Printf("Failed to mirror enquiry locally: %v", mirrorErr)
		err := errors.Join(writeErr, mirrorErr)
		return SubmitResult{
			OK:          false,
			BackendUsed: BackendNone,
			Err:         err,
			Error:       err.Error(),
			Notice:      newNotice(LevelError, "❌ Failed to save enquiry. Please try again."),
		}
	}
	return SubmitResult{
		OK:          false,
		BackendUsed: BackendLocal,
		LocalID:     local.LocalID,
		Err:         writeErr,
		Error:       writeErr.Error(),
		Notice:      newNotice(LevelWarning, "⚠️ Could not reach the server. Enquiry saved on this device."),
	}
}

func (g *Gateway) backendName() string {
	if g.Backend == nil {
		return "unconfigured"
	}
	return g.Backend.Name()
}
