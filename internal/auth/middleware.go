package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const StaffKey contextKey = "staff"

// StaffFrom returns the staff identity stored by the middleware.
func StaffFrom(ctx context.Context) (Staff, bool) {
	s, ok := ctx.Value(StaffKey).(Staff)
	return s, ok
}

// Middleware returns a huma operation middleware guarding staff routes. It
// accepts an X-API-KEY header first and falls back to the auth_token
// cookie, renewing the cookie once less than half its lifetime is left.
// With no JWT secret configured every request passes as open access.
func (h *AuthHandler) Middleware(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !h.Enabled() {
			next(huma.WithValue(ctx, StaffKey, Staff{Name: "desk", Via: ViaOpen}))
			return
		}

		// 1. Check for API Key Header
		if apiKey := ctx.Header(APIKeyHeader); apiKey != "" {
			staff, err := h.lookupAPIKey(ctx.Context(), apiKey)
			if err == nil {
				next(huma.WithValue(ctx, StaffKey, staff))
				return
			}
			if errors.Is(err, ErrAPIKeyExpired) {
				huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: API Key expired")
				return
			}
		}

		// 2. Fallback to JWT Cookie
		cookie, err := readCookie(ctx, CookieName)
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: No token found")
			return
		}

		name, remaining, err := h.ParseToken(cookie.Value)
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		// Sliding session
		if remaining < TokenDuration/2 {
			if newToken, err := h.GenerateToken(name); err == nil {
				ctx.AppendHeader("Set-Cookie", h.sessionCookie(newToken).String())
			} else {
				log.Printf("Failed to renew token for %s: %v", name, err)
			}
		}

		next(huma.WithValue(ctx, StaffKey, Staff{Name: name, Via: ViaToken}))
	}
}

func readCookie(ctx huma.Context, name string) (*http.Cookie, error) {
	cookies, err := http.ParseCookie(ctx.Header("Cookie"))
	if err != nil {
		return nil, err
	}
	for _, c := range cookies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, http.ErrNoCookie
}

type MeOutput struct {
	Body Staff
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeOutput, error) {
	staff, ok := StaffFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	return &MeOutput{Body: staff}, nil
}
