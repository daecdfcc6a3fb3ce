package handler

import (
	"net/http"
	"strconv"
)

// sessionKey identifies the browser session that per-session view state is
// keyed on. The access token value is opaque and unique per login.
func sessionKey(r *http.Request) string {
	cookie, err := r.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie.Value
}

// formInt parses a form value as an integer id. Returns ok=false on
// anything that is not a number.
func formInt(r *http.Request, field string) (int, bool) {
	v, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0, false
	}
	return v, true
}
