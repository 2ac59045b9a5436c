package controllers

import (
	"net/http"
	"strings"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/internal/theme"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

// systemThemeQuery carries the client's prefers-color-scheme value.
const systemThemeQuery = "system"

type setThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type themeResponse struct {
	Preference *theme.Theme `json:"preference"`
	Resolved   theme.Theme  `json:"resolved"`
}

func systemTheme(r *http.Request) theme.Theme {
	t, _ := theme.Parse(strings.TrimSpace(r.URL.Query().Get(systemThemeQuery)))
	return t
}

func newThemeResponse(s *theme.Store, system theme.Theme) themeResponse {
	resp := themeResponse{Resolved: s.Resolve(system)}
	if pref, ok := s.Preference(); ok {
		resp.Preference = &pref
	}
	return resp
}

// ThemeGet returns the stored preference and the theme to render.
func ThemeGet(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newThemeResponse(sess.Theme, systemTheme(r)))
	}
}

func ThemeSet(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload setThemeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		if _, err := sess.Theme.Set(ctx, payload.Theme); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newThemeResponse(sess.Theme, systemTheme(r)))
	}
}

// ThemeToggle flips the rendered theme and remembers the result.
func ThemeToggle(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		system := systemTheme(r)
		sess.Theme.Toggle(r.Context(), system)
		responses.WriteSuccess(w, newThemeResponse(sess.Theme, system))
	}
}

// ThemeReset forgets the preference so the system theme applies again.
func ThemeReset(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Theme.Reset(r.Context())
		responses.WriteSuccess(w, newThemeResponse(sess.Theme, systemTheme(r)))
	}
}
