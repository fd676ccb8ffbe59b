package web

import (
	"net/http"

	"github.com/louisbranch/unclutter.space/internal/platform/requestctx"
	"github.com/louisbranch/unclutter.space/internal/session"
	"github.com/louisbranch/unclutter.space/internal/web/httpx"
)

// RequireSession verifies the credential cookie once per request and
// stores the resolved user id in the request context. A missing,
// expired, or tampered cookie gets the same response: the cookie is
// cleared and the client is pointed at temp-user provisioning. A valid
// token whose account was already reaped is treated the same way, since
// credentials outlive the retention window.
func (h *Handler) RequireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := session.ReadCookie(r)
			if ok {
				if userID, valid := h.sessions.Verify(token); valid {
					exists, err := h.svc.UserExists(r.Context(), userID)
					if err != nil {
						httpx.WriteError(w, err)
						return
					}
					if exists {
						next.ServeHTTP(w, r.WithContext(requestctx.WithUserID(r.Context(), userID)))
						return
					}
				}
			}
			session.ClearCookie(w)
			httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"error":    "session is missing or expired",
				"redirect": "/create-temp-user",
			})
		})
	}
}
