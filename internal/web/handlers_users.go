package web

import (
	"net/http"

	"github.com/louisbranch/unclutter.space/internal/session"
	"github.com/louisbranch/unclutter.space/internal/web/httpx"
)

// handleCreateTempUser provisions an anonymous account, signs a session
// credential for it, and sends the browser back to the app root.
func (h *Handler) handleCreateTempUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CreateTempUser(httpx.RequestContext(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	session.WriteCookie(w, token, expiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
