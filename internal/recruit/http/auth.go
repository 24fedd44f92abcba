package http

import (
	"errors"
	"net/http"

	"github.com/heartbeatcoders/recruit/internal/recruit/service"
	"github.com/heartbeatcoders/recruit/pkg/httpx"
	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

// AuthHandler serves the login/logout/register flows under /auth.
type AuthHandler struct {
	Accounts *service.AccountService
	Sessions *service.SessionService
}

type loginPage struct {
	Email string
	Error string
}

func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	if !IdentityFromContext(r.Context()).IsGuest() {
		httpx.SeeOther(w, r, "/dashboard")
		return
	}
	render(w, r, http.StatusOK, "login.html", loginPage{})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "login.html", loginPage{Error: "Invalid form submission."})
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.Accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			render(w, r, http.StatusUnauthorized, "login.html", loginPage{
				Email: email,
				Error: "Invalid email or password.",
			})
			return
		}
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, sess, err := h.Sessions.Issue(r.Context(), user)
	if err != nil {
		slogx.FromContext(r.Context()).Error("session issue failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token, int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds()))
	slogx.FromContext(r.Context()).Info("login", "user_id", user.ID, "role", user.Role.String())
	httpx.SeeOther(w, r, "/dashboard")
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := h.Sessions.Revoke(r.Context(), c.Value); err != nil {
			slogx.FromContext(r.Context()).Warn("session revoke failed", "error", err)
		}
	}
	clearSessionCookie(w)
	httpx.SeeOther(w, r, "/")
}

type registerPage struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Error     string
}

func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if !IdentityFromContext(r.Context()).IsGuest() {
		httpx.SeeOther(w, r, "/dashboard")
		return
	}
	render(w, r, http.StatusOK, "register.html", registerPage{})
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "register.html", registerPage{Error: "Invalid form submission."})
		return
	}

	in := service.RegisterInput{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Password:  r.PostFormValue("password"),
	}

	page := registerPage{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}

	user, err := h.Accounts.Register(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			page.Error = "That email is already registered."
			render(w, r, http.StatusConflict, "register.html", page)
		case errors.Is(err, service.ErrInvalidCredentials):
			page.Error = "Email and password are required."
			render(w, r, http.StatusBadRequest, "register.html", page)
		default:
			slogx.FromContext(r.Context()).Error("registration failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	token, sess, err := h.Sessions.Issue(r.Context(), user)
	if err != nil {
		// Account exists; let them log in normally rather than failing hard.
		slogx.FromContext(r.Context()).Warn("post-register session issue failed", "error", err)
		httpx.SeeOther(w, r, "/auth/login")
		return
	}

	setSessionCookie(w, token, int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds()))
	httpx.SeeOther(w, r, "/dashboard")
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
