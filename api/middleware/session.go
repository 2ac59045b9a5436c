package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gamevault/storefront-backend/api/responses"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"
	SessionCookie = "gv_session"
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Session resolves the visitor's storefront session from the X-Session-Id
// header or the gv_session cookie, minting a new id when neither is present.
// The id is echoed back in both so browser and API clients can keep it.
func Session(logg *logger.Logger, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				if cookie, err := r.Cookie(SessionCookie); err == nil {
					sessionID = strings.TrimSpace(cookie.Value)
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			if !sessionIDRe.MatchString(sessionID) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
						WithDetails(map[string]any{"header": SessionHeader}))
				return
			}

			w.Header().Set(SessionHeader, sessionID)
			cookie := &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if ttl > 0 {
				cookie.MaxAge = int(ttl.Seconds())
			}
			http.SetCookie(w, cookie)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
