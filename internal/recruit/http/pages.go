package http

import (
	"errors"
	"net/http"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/service"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/pkg/httpx"
	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

// PagesHandler serves the rendered site pages outside the auth flow.
type PagesHandler struct {
	Accounts *service.AccountService
}

type homePage struct {
	Identity domain.Identity
}

func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "base.html", homePage{
		Identity: IdentityFromContext(r.Context()),
	})
}

type dashboardPage struct {
	Identity domain.Identity
	User     domain.User
}

func (h *PagesHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	user, err := h.Accounts.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Session outlived the account. Drop it and start over.
			clearSessionCookie(w)
			httpx.SeeOther(w, r, "/auth/login")
			return
		}
		slogx.FromContext(r.Context()).Error("dashboard load failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, "dashboard.html", dashboardPage{
		Identity: identity,
		User:     user,
	})
}

type usersPage struct {
	Identity domain.Identity
	Users    []domain.User
}

func (h *PagesHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListUsers(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("account listing failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, "users.html", usersPage{
		Identity: IdentityFromContext(r.Context()),
		Users:    users,
	})
}
