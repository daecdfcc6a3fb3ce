package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gadgeto/storefront/internal/domain"
)

const (
	accessTokenCookie = "accessToken"
	flashCookieError  = "flash_error"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// Auth decodes the backend-issued access token so handlers know who is
// signed in. Auth failures on protected pages redirect to the login screen
// with a flash message instead of rendering an error body.
type Auth struct {
	jwtKey        []byte
	secureCookies bool
}

func NewAuth(jwtKey string, secureCookies bool) *Auth {
	return &Auth{jwtKey: []byte(jwtKey), secureCookies: secureCookies}
}

// NeedAuth returns middleware that requires a signed-in user
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.wrapWithRedirect(a.auth(false))
}

// AdminOnly returns middleware that requires the admin role
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.wrapWithRedirect(a.auth(true))
}

// OptionalAuth populates user context when a valid token is present but
// never rejects the request
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(accessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil, errNoToken
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	user := &domain.User{Email: email, Role: role}
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleSeller {
		return nil, errInvalidClaims
	}
	return user, nil
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					RequestLogger(r).Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			if adminOnly && !user.IsAdmin() {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authRedirectWriter intercepts 401/403 errors and redirects to login
type authRedirectWriter struct {
	http.ResponseWriter
	request       *http.Request
	secureCookies bool
	redirected    bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected {
		return
	}

	if statusCode == http.StatusUnauthorized {
		w.redirected = true
		redirectToLogin(w.ResponseWriter, w.request, w.secureCookies, "Please log in to continue")
		return
	}

	if statusCode == http.StatusForbidden {
		w.redirected = true
		redirectToLogin(w.ResponseWriter, w.request, w.secureCookies, "Access denied")
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if w.redirected {
		return len(data), nil // discard body after redirect
	}
	return w.ResponseWriter.Write(data)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool, errorMsg string) {
	// Base64 so special characters survive the cookie round trip
	encodedMessage := base64.StdEncoding.EncodeToString([]byte(errorMsg))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieError,
		Value:    encodedMessage,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *Auth) wrapWithRedirect(authMiddleware func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &authRedirectWriter{
				ResponseWriter: w,
				request:        r,
				secureCookies:  a.secureCookies,
			}
			authMiddleware(next).ServeHTTP(wrapper, r)
		})
	}
}

// GetUserFromContext retrieves the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
