package apiclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Sentinels for the error taxonomy. Callers test with errors.Is; the
// messages shown to users live on BackendError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrBackend      = errors.New("backend error")
)

// BackendError is a classified non-2xx backend response. Fields carries
// messages attributable to a single form field; General carries the rest.
type BackendError struct {
	StatusCode int
	Fields     map[string]string
	General    []string

	kind error
}

func (e *BackendError) Error() string {
	if len(e.General) > 0 {
		return e.General[0]
	}
	for _, msg := range e.Fields {
		return msg
	}
	return e.kind.Error()
}

func (e *BackendError) Unwrap() error { return e.kind }

// classifyResponse converts a non-2xx response into a BackendError according
// to the error taxonomy. 2xx returns nil. The body is consumed only on error.
func classifyResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		// Hard exit for the caller: redirect to login, never an inline
		// error. 403 lands here too so a role revoked server-side sends
		// the user back to login instead of an error panel.
		return &BackendError{StatusCode: resp.StatusCode, kind: ErrUnauthorized}
	case http.StatusConflict:
		return &BackendError{
			StatusCode: resp.StatusCode,
			General:    []string{"An account with these details already exists"},
			kind:       ErrConflict,
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		fields, general := mapMessages(decodeErrorMessages(body))
		if len(fields) == 0 && len(general) == 0 {
			general = []string{"Please check your input and try again"}
		}
		return &BackendError{
			StatusCode: resp.StatusCode,
			Fields:     fields,
			General:    general,
			kind:       ErrBadRequest,
		}
	}

	return &BackendError{
		StatusCode: resp.StatusCode,
		General:    []string{"Something went wrong. Please try again"},
		kind:       ErrBackend,
	}
}

// decodeErrorMessages extracts human-readable messages from the error body.
// The backend emits either {"message": "..."}, {"message": [...]} or a bare
// array of strings.
func decodeErrorMessages(body []byte) []string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}

	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	raw := json.RawMessage(trimmed)
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil || len(envelope.Message) == 0 {
			return nil
		}
		raw = envelope.Message
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// fieldPatterns maps a backend validation message onto a known form field by
// looking for the field's name as a word. Ordered so "id" (a substring of
// plenty of English) is matched last and only as a whole word.
var fieldPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{"email", regexp.MustCompile(`(?i)\bemail\b`)},
	{"phone", regexp.MustCompile(`(?i)\bphone\b`)},
	{"id", regexp.MustCompile(`(?i)\bid\b`)},
}

// mapMessages heuristically attributes backend validation messages to form
// fields; anything unmatched becomes a general error. Only the first message
// per field is kept.
func mapMessages(msgs []string) (fields map[string]string, general []string) {
	for _, msg := range msgs {
		matched := false
		for _, fp := range fieldPatterns {
			if fp.re.MatchString(msg) {
				if fields == nil {
					fields = make(map[string]string)
				}
				if _, seen := fields[fp.field]; !seen {
					fields[fp.field] = msg
				}
				matched = true
				break
			}
		}
		if !matched {
			general = append(general, msg)
		}
	}
	return fields, general
}
