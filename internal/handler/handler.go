package handler

import (
	"html/template"
	"net/http"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/config"
	"github.com/gadgeto/storefront/internal/markdown"
	"github.com/gadgeto/storefront/internal/view"
)

type Handler struct {
	Templates     map[string]*template.Template
	Public        config.Public
	TextProcessor *markdown.TextProcessor
	APIClient     *apiclient.Client
	Views         *view.Sessions
}

func New(templates map[string]*template.Template, publicCfg config.Public, textProcessor *markdown.TextProcessor, apiClient *apiclient.Client, views *view.Sessions) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		TextProcessor: textProcessor,
		APIClient:     apiClient,
		Views:         views,
	}
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/favicon.ico")
}
