package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gadgeto/storefront/internal/domain"
	"github.com/gadgeto/storefront/internal/middleware"
)

func (h *Handler) HomeGetHandler(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Featured []domain.Product
	}

	products, err := h.APIClient.GetProducts()
	if err != nil {
		middleware.RequestLogger(r).Error("loading catalog for home page", "error", err)
		h.renderTemplateWithError(w, r, "home.html", data, "Catalog is temporarily unavailable")
		return
	}

	if len(products) > 4 {
		products = products[:4]
	}
	data.Featured = products

	h.renderTemplate(w, r, "home.html", data)
}

func (h *Handler) ProductsGetHandler(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Products []domain.Product
	}

	products, err := h.APIClient.GetProducts()
	if err != nil {
		middleware.RequestLogger(r).Error("loading catalog", "error", err)
		h.renderTemplateWithError(w, r, "products.html", data, "Catalog is temporarily unavailable")
		return
	}
	data.Products = products

	h.renderTemplate(w, r, "products.html", data)
}

func (h *Handler) ProductGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	product, err := h.APIClient.GetProduct(id)
	if err != nil {
		middleware.RequestLogger(r).Error("loading product", "id", id, "error", err)
		http.NotFound(w, r)
		return
	}

	rendered := domain.RenderedProduct{
		Product:         product,
		DescriptionHTML: h.TextProcessor.ProcessDescription(product.Description),
	}

	h.renderTemplate(w, r, "product.html", rendered)
}

// SellerDashboardGetHandler shows the catalog from the seller's side.
func (h *Handler) SellerDashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Products []domain.Product
	}

	products, err := h.APIClient.GetProducts()
	if err != nil {
		middleware.RequestLogger(r).Error("loading catalog for seller dashboard", "error", err)
		h.renderTemplateWithError(w, r, "seller_dashboard.html", data, "Catalog is temporarily unavailable")
		return
	}
	data.Products = products

	h.renderTemplate(w, r, "seller_dashboard.html", data)
}
