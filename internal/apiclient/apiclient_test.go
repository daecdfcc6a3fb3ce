package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadgeto/storefront/internal/domain"
	"github.com/gadgeto/storefront/internal/validation"
)

func browserRequest(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestListDirectory(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		wantPath string
		payload  string
		want     []domain.DirectoryEntry
	}{
		{
			name:     "admins from bare array",
			category: domain.CategoryAdmin,
			wantPath: "/admin",
			payload:  `[{"id": 1, "name": "Alice", "status": "active"}]`,
			want:     []domain.DirectoryEntry{{ID: 1, Name: "Alice", Status: domain.StatusActive}},
		},
		{
			name:     "inactive admins from envelope",
			category: domain.CategoryInactiveAdmin,
			wantPath: "/admin/inactive",
			payload:  `{"success": true, "data": [{"id": "3", "name": "X", "status": "inactive"}]}`,
			want:     []domain.DirectoryEntry{{ID: 3, Name: "X", Status: domain.StatusInactive}},
		},
		{
			name:     "sellers",
			category: domain.CategorySeller,
			wantPath: "/seller",
			payload:  `{"data": []}`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "session", mustCookie(t, r, "accessToken"))
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := New(srv.URL, 0)
			got, err := c.ListDirectory(browserRequest(&http.Cookie{Name: "accessToken", Value: "session"}), tt.category)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func mustCookie(t *testing.T, r *http.Request, name string) string {
	t.Helper()
	c, err := r.Cookie(name)
	require.NoError(t, err)
	return c.Value
}

func TestListDirectory_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.ListDirectory(browserRequest(), domain.CategoryAdmin)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateStatus(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/admin/updateStatus/5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	err := c.UpdateStatus(browserRequest(), 5, domain.StatusInactive)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "inactive"}, gotBody)
}

func TestDeleteAdmin(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/admin/5", r.URL.Path)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	require.NoError(t, c.DeleteAdmin(browserRequest(), 5))
	assert.Equal(t, int32(1), calls)
}

func TestCreateAdmin_MultipartFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/admin/createAdmin", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(8<<20))

		assert.Equal(t, "7", r.FormValue("id"))
		assert.Equal(t, "Bob Smith", r.FormValue("name"))
		assert.Equal(t, "bob@example.com", r.FormValue("email"))
		assert.Equal(t, "supersecret", r.FormValue("password"))
		assert.Equal(t, "01712345678", r.FormValue("phone"))
		assert.Equal(t, "1234567890", r.FormValue("nid"))
		assert.Equal(t, "18", r.FormValue("age"))
		assert.Empty(t, r.MultipartForm.File["file"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	reg := &validation.Registration{
		ID: 7, Name: "Bob Smith", Email: "bob@example.com",
		Password: "supersecret", Phone: "01712345678", NID: "1234567890", Age: 18,
	}

	c := New(srv.URL, 0)
	assert.NoError(t, c.CreateAdmin(browserRequest(), reg, nil))
}

func TestCreateAdmin_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "email must be unique"}`, http.StatusConflict)
	}))
	defer srv.Close()

	reg := &validation.Registration{ID: 7, Name: "Bob Smith"}
	c := New(srv.URL, 0)

	err := c.CreateAdmin(browserRequest(), reg, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@x.com", creds["email"])

		http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "tok"})
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"role": "seller"}})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	result, err := c.Login("a@x.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "seller", result.Role)
	require.Len(t, result.Cookies, 1)
	assert.Equal(t, "accessToken", result.Cookies[0].Name)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.Login("a@x.com", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetProducts_Cached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"data": [{"id": 1, "name": "Phone", "price": 999.5}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute)

	first, err := c.GetProducts()
	require.NoError(t, err)
	second, err := c.GetProducts()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls, "second fetch should come from cache")

	c.flushCatalog()
	_, err = c.GetProducts()
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}
