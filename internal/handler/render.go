package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gadgeto/storefront/internal/domain"
	"github.com/gadgeto/storefront/internal/middleware"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common domain.CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		middleware.RequestLogger(r).Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

// initCommonTemplateData collects the per-request fields every page shows:
// flash messages, the signed-in user, and the CSRF token for forms.
func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) domain.CommonTemplateData {
	return domain.CommonTemplateData{
		Error:     h.getFlash(w, r, flashCookieError),
		Success:   h.getFlash(w, r, flashCookieSuccess),
		User:      middleware.GetUserFromContext(r),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
}
