package setup

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/config"
	"github.com/gadgeto/storefront/internal/handler"
	"github.com/gadgeto/storefront/internal/markdown"
	"github.com/gadgeto/storefront/internal/middleware"
	"github.com/gadgeto/storefront/internal/view"
)

const (
	baseTemplate           = "base.html"
	tmplPath               = "templates"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Handler *handler.Handler
	Auth    *middleware.Auth
	Public  config.Public
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	if cfg.JwtKey() == "" {
		return nil, fmt.Errorf("jwt key is required (private.yaml or JWT_SECRET)")
	}

	templates := mustLoadTemplates(tmplPath)
	textProcessor := markdown.New()
	apiClient := apiclient.New(cfg.Public.APIBaseURL, cfg.Public.CatalogCacheTTL)
	views := view.NewSessions()

	h := handler.New(templates, cfg.Public, textProcessor, apiClient, views)
	startTemplateReloader(h, tmplPath)

	return &Dependencies{
		Handler: h,
		Auth:    middleware.NewAuth(cfg.JwtKey(), cfg.Public.SecureCookies),
		Public:  cfg.Public,
	}, nil
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate && f.Name() != "partials.html" {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"formatPrice": formatPrice,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
				path.Join(tmplPath, "partials.html"),
			),
			)
		}
	}
	return templates
}

func startTemplateReloader(h *handler.Handler, tmplPath string) {
	if os.Getenv("ENV") == "development" {
		ticker := time.NewTicker(templateReloadInterval)
		go func() {
			for range ticker.C {
				h.Templates = mustLoadTemplates(tmplPath)
			}
		}()
	}
}
