package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gadgeto/storefront/internal/middleware"
	"github.com/gadgeto/storefront/internal/validation"
)

// registerFormData is what the registration template renders: previous
// input values for re-display plus per-field and general errors.
type registerFormData struct {
	Values      map[string]string
	FieldErrors validation.FieldErrors
	General     []string
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", registerFormData{Values: map[string]string{}})
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	in := validation.RegistrationInput{
		ID:       r.FormValue("id"),
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Phone:    r.FormValue("phone"),
		NID:      r.FormValue("nid"),
		Age:      r.FormValue("age"),
		File:     formFile(r, "file"),
	}

	state := h.Views.Get(sessionKey(r)).Submission
	out := state.Submit(h.APIClient.Bound(r), in)

	switch {
	case out.Busy:
		// Another submit from this session is in flight; drop this one
		http.Redirect(w, r, "/admin/register", http.StatusSeeOther)
	case out.Unauthorized:
		h.redirectWithFlash(w, r, "/login", flashCookieError, "Please log in to continue")
	case out.Accepted:
		if width, height, ok := validation.ProfileImageDimensions(in.File); ok {
			middleware.RequestLogger(r).Info("admin registered with profile image",
				"file", in.File.Filename, "width", width, "height", height)
		}
		h.redirectWithFlash(w, r, "/admin/dashboard", flashCookieSuccess, "Admin registered successfully")
	default:
		h.renderTemplate(w, r, "register.html", registerFormData{
			Values:      previousValues(in),
			FieldErrors: out.FieldErrors,
			General:     out.General,
		})
	}
}

// formFile returns the upload's header without opening it. Nil when the
// field was left empty.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// previousValues re-populates the form after a failed submit. The password
// is never echoed back.
func previousValues(in validation.RegistrationInput) map[string]string {
	return map[string]string{
		"id":    strings.TrimSpace(in.ID),
		"name":  in.Name,
		"email": in.Email,
		"phone": in.Phone,
		"nid":   in.NID,
		"age":   strings.TrimSpace(in.Age),
	}
}
