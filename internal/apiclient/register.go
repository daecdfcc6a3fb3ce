package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/gadgeto/storefront/internal/validation"
)

// CreateAdmin submits a validated registration as a multipart form, attaching
// the optional profile picture under the "file" part.
func (c *Client) CreateAdmin(r *http.Request, reg *validation.Registration, file *multipart.FileHeader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"id":       strconv.Itoa(reg.ID),
		"name":     reg.Name,
		"email":    reg.Email,
		"password": reg.Password,
		"phone":    reg.Phone,
		"nid":      reg.NID,
		"age":      strconv.Itoa(reg.Age),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if file != nil {
		if err := writeFilePart(mw, file); err != nil {
			return err
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	resp, err := c.do("POST", "/admin/createAdmin", &buf, mw.FormDataContentType(), r.Cookies()...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return classifyResponse(resp)
}

// writeFilePart copies the uploaded file into the outgoing form, preserving
// the original Content-Type so the backend sees what the browser sent.
func writeFilePart(mw *multipart.Writer, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
	if ct := file.Header.Get("Content-Type"); ct != "" {
		header.Set("Content-Type", ct)
	}

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy file data: %w", err)
	}
	return nil
}

func (rc *RequestClient) CreateAdmin(reg *validation.Registration, file *multipart.FileHeader) error {
	return rc.c.CreateAdmin(rc.r, reg, file)
}
