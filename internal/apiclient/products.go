package apiclient

import (
	"encoding/json"
	"fmt"
	"io"

	cache "github.com/patrickmn/go-cache"

	"github.com/gadgeto/storefront/internal/domain"
)

const catalogCacheKey = "catalog"

// GetProducts returns the public product catalog, served from a short-lived
// cache so the storefront doesn't hammer the backend on every page view.
func (c *Client) GetProducts() ([]domain.Product, error) {
	if cached, ok := c.catalog.Get(catalogCacheKey); ok {
		return cached.([]domain.Product), nil
	}

	resp, err := c.do("GET", "/products", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := classifyResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading products response: %w", err)
	}

	products, err := domain.DecodeList[domain.Product](body)
	if err != nil {
		return nil, err
	}

	c.catalog.Set(catalogCacheKey, products, cache.DefaultExpiration)
	return products, nil
}

// GetProduct fetches a single catalog item, bypassing the cache.
func (c *Client) GetProduct(id int) (domain.Product, error) {
	var product domain.Product

	resp, err := c.do("GET", fmt.Sprintf("/products/%d", id), nil, "")
	if err != nil {
		return product, err
	}
	defer resp.Body.Close()

	if err := classifyResponse(resp); err != nil {
		return product, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return product, fmt.Errorf("cannot decode product response: %w", err)
	}
	return product, nil
}

// flushCatalog drops cached catalog data; tests use it to force re-fetches.
func (c *Client) flushCatalog() {
	c.catalog.Delete(catalogCacheKey)
}
