package handler

import (
	"errors"
	"net/http"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/domain"
	"github.com/gadgeto/storefront/internal/middleware"
)

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	var data struct {
		EmailPrefill string
	}
	data.EmailPrefill = h.getFlash(w, r, emailPrefillCookie)

	h.renderTemplate(w, r, "login.html", data)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	result, err := h.APIClient.Login(email, password)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, apiclient.ErrBadRequest) {
			// One generic message for every credential failure
			h.setFlash(w, flashCookieError, "Invalid email or password")
		} else {
			middleware.RequestLogger(r).Error("during login API call", "error", err)
			h.setFlash(w, flashCookieError, "Internal error: backend unavailable")
		}
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Forward session cookies from the backend response to the browser
	for _, cookie := range result.Cookies {
		http.SetCookie(w, cookie)
	}

	switch result.Role {
	case domain.RoleAdmin:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	case domain.RoleSeller:
		http.Redirect(w, r, "/seller/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	// Drop the per-session view state before the cookie disappears
	if sid := sessionKey(r); sid != "" {
		h.Views.Evict(sid)
	}

	if err := h.APIClient.Logout(r); err != nil {
		middleware.RequestLogger(r).Warn("backend logout failed", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
