package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/domain"
	"github.com/gadgeto/storefront/internal/middleware"
	"github.com/gadgeto/storefront/internal/view"
)

type dashboardTab struct {
	Category domain.Category
	Title    string
	Active   bool
}

type dashboardData struct {
	Tabs     []dashboardTab
	Snapshot view.DirectorySnapshot
}

var dashboardTabs = []domain.Category{
	domain.CategoryAdmin,
	domain.CategoryInactiveAdmin,
	domain.CategorySeller,
}

func (h *Handler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.CategoryAdmin
	if tab := r.URL.Query().Get("tab"); tab != "" {
		category = domain.Category(tab)
		if !category.Valid() {
			http.NotFound(w, r)
			return
		}
	}

	d := h.Views.Get(sessionKey(r)).Directory
	errMsg := ""
	if err := d.LoadCollection(h.APIClient.Bound(r), category); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Please log in to continue")
			return
		}
		middleware.RequestLogger(r).Error("loading directory", "category", category, "error", err)
		errMsg = "Failed to load " + category.Title()
	}

	snap := d.Snapshot()
	data := dashboardData{Snapshot: snap}
	for _, c := range dashboardTabs {
		data.Tabs = append(data.Tabs, dashboardTab{
			Category: c,
			Title:    c.Title(),
			Active:   c == snap.Active,
		})
	}

	h.renderTemplateWithError(w, r, "dashboard.html", data, errMsg)
}

// dashboardURL keeps the active tab across the redirect after an action.
func dashboardURL(r *http.Request) string {
	if tab := r.FormValue("tab"); domain.Category(tab).Valid() {
		return "/admin/dashboard?tab=" + tab
	}
	return "/admin/dashboard"
}

func (h *Handler) DeleteRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := formInt(r, "id")
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	d := h.Views.Get(sessionKey(r)).Directory
	d.RequestDelete(id, r.FormValue("name"))
	http.Redirect(w, r, dashboardURL(r), http.StatusSeeOther)
}

func (h *Handler) DeleteCancelHandler(w http.ResponseWriter, r *http.Request) {
	d := h.Views.Get(sessionKey(r)).Directory
	d.CancelDelete()
	http.Redirect(w, r, dashboardURL(r), http.StatusSeeOther)
}

func (h *Handler) DeleteConfirmHandler(w http.ResponseWriter, r *http.Request) {
	d := h.Views.Get(sessionKey(r)).Directory
	if err := d.ConfirmDelete(h.APIClient.Bound(r)); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Please log in to continue")
			return
		}
		middleware.RequestLogger(r).Error("deleting admin", "error", err)
		// The error notice is already on the view; just re-render
	}
	http.Redirect(w, r, dashboardURL(r), http.StatusSeeOther)
}

func (h *Handler) StatusToggleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := formInt(r, "id")
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	status := domain.Status(r.FormValue("status"))
	if !status.Valid() {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	d := h.Views.Get(sessionKey(r)).Directory
	if err := d.ToggleStatus(h.APIClient.Bound(r), id, status); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Please log in to continue")
			return
		}
		middleware.RequestLogger(r).Error("updating status", "id", id, "error", err)
	}
	http.Redirect(w, r, dashboardURL(r), http.StatusSeeOther)
}

func (h *Handler) StatusGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	entry, err := h.APIClient.GetAdmin(r, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Please log in to continue")
			return
		}
		middleware.RequestLogger(r).Error("fetching admin", "id", id, "error", err)
		h.redirectWithFlash(w, r, "/admin/dashboard", flashCookieError, "Failed to load admin details")
		return
	}

	h.renderTemplate(w, r, "status.html", entry)
}
