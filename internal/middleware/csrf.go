package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gadgeto/storefront/internal/csrf"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"

	// Registration uploads are capped well below this; the limit only
	// bounds memory while parsing.
	multipartMemoryLimit = 8 << 20
)

type csrfContextKey string

const csrfTokenContextKey csrfContextKey = "csrf_token"

// CSRFConfig holds CSRF middleware configuration
type CSRFConfig struct {
	SecureCookies bool
}

// GenerateCSRFToken middleware generates and sets CSRF token cookie
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(csrfCookieName)
			var token string

			if err != nil || cookie.Value == "" {
				token, err = csrf.GenerateToken()
				if err != nil {
					RequestLogger(r).Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400, // 24 hours
				})
			} else {
				token = cookie.Value
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken middleware validates CSRF token from form submission
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only mutating methods carry a form token
			if r.Method != http.MethodPost && r.Method != http.MethodPut &&
				r.Method != http.MethodPatch && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil {
				RequestLogger(r).Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if strings.HasPrefix(contentType, "multipart/form-data") {
				if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
					RequestLogger(r).Error("failed to parse multipart form", "error", err)
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
			} else if r.Form == nil {
				if err := r.ParseForm(); err != nil {
					RequestLogger(r).Error("failed to parse form", "error", err)
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
			}

			formToken := r.FormValue(csrfFormField)

			if !csrf.ValidateToken(cookie.Value, formToken) {
				RequestLogger(r).Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFTokenFromContext retrieves CSRF token from request context
func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
