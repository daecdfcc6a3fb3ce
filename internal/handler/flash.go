package handler

import (
	"encoding/base64"
	"net/http"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	emailPrefillCookie = "email_prefill"
)

// setFlash stores a one-shot message for the next page render. Base64 so
// special characters survive the cookie round trip.
func (h *Handler) setFlash(w http.ResponseWriter, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// getFlash reads and clears a flash cookie. Returns "" when absent or
// undecodable.
func (h *Handler) getFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, targetURL, cookieName, message string) {
	h.setFlash(w, cookieName, message)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}
