package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gadgeto/storefront/internal/domain"
)

func categoryPath(category domain.Category) string {
	switch category {
	case domain.CategoryInactiveAdmin:
		return "/admin/inactive"
	case domain.CategorySeller:
		return "/seller"
	default:
		return "/admin"
	}
}

// ListDirectory fetches the collection for a dashboard category. The backend
// wraps lists in an envelope on some endpoints and not on others; the result
// is always a bare ordered slice.
func (c *Client) ListDirectory(r *http.Request, category domain.Category) ([]domain.DirectoryEntry, error) {
	resp, err := c.do("GET", categoryPath(category), nil, "", r.Cookies()...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := classifyResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading directory response: %w", err)
	}
	return domain.DecodeDirectoryList(body)
}

// GetAdmin fetches a single directory entry by id.
func (c *Client) GetAdmin(r *http.Request, id int) (domain.DirectoryEntry, error) {
	var entry domain.DirectoryEntry

	resp, err := c.do("GET", fmt.Sprintf("/admin/byId/%d", id), nil, "", r.Cookies()...)
	if err != nil {
		return entry, err
	}
	defer resp.Body.Close()

	if err := classifyResponse(resp); err != nil {
		return entry, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return entry, fmt.Errorf("cannot decode admin response: %w", err)
	}
	return entry, nil
}

// UpdateStatus changes an entry's status. Callers must re-fetch afterwards;
// the backend owns the authoritative value.
func (c *Client) UpdateStatus(r *http.Request, id int, status domain.Status) error {
	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	resp, err := c.do("PATCH", fmt.Sprintf("/admin/updateStatus/%d", id), bytes.NewBuffer(payload), "", r.Cookies()...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return classifyResponse(resp)
}

// DeleteAdmin removes a directory entry.
func (c *Client) DeleteAdmin(r *http.Request, id int) error {
	resp, err := c.do("DELETE", fmt.Sprintf("/admin/%d", id), nil, "", r.Cookies()...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return classifyResponse(resp)
}

// Bound-request forwarding so view models stay free of http.Request.

func (rc *RequestClient) ListDirectory(category domain.Category) ([]domain.DirectoryEntry, error) {
	return rc.c.ListDirectory(rc.r, category)
}

func (rc *RequestClient) GetAdmin(id int) (domain.DirectoryEntry, error) {
	return rc.c.GetAdmin(rc.r, id)
}

func (rc *RequestClient) UpdateStatus(id int, status domain.Status) error {
	return rc.c.UpdateStatus(rc.r, id, status)
}

func (rc *RequestClient) DeleteAdmin(id int) error {
	return rc.c.DeleteAdmin(rc.r, id)
}
