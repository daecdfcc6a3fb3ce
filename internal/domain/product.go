package domain

import "html/template"

// Product is a catalog item from the backend. Description is raw markdown;
// the rendered, sanitized HTML lives only in the view model.
type Product struct {
	ID          FlexInt `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image"`
}

// RenderedProduct pairs a Product with its display-ready description.
type RenderedProduct struct {
	Product
	DescriptionHTML template.HTML
}
