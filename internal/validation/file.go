package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// MaxProfileImageBytes caps the optional registration profile picture.
const MaxProfileImageBytes int64 = 2 << 20 // 2 MiB

// CheckProfileImage validates the optional profile picture: size within the
// limit and a MIME type under image/. A nil header is fine (the picture is
// optional). Only the file header is consulted, no data is read.
func CheckProfileImage(fh *multipart.FileHeader) error {
	if fh == nil {
		return nil
	}

	if fh.Size > MaxProfileImageBytes {
		return fmt.Errorf("%w: %d bytes (file: %s)", ErrImageTooLarge, fh.Size, fh.Filename)
	}

	mimeType, err := DetectMimeType(fh)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("%w: %s (file: %s)", ErrNotAnImage, mimeType, fh.Filename)
	}

	return nil
}

// DetectMimeType resolves the upload's MIME type from the part header,
// falling back to the filename extension when the browser sent nothing
// useful.
func DetectMimeType(fh *multipart.FileHeader) (string, error) {
	mimeType := fh.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fh.Filename)
		if detected := mime.TypeByExtension(ext); detected != "" {
			mimeType = detected
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("%w for file: %s", ErrUnknownMimeType, fh.Filename)
	}

	return mimeType, nil
}

// ProfileImageDimensions probes the uploaded image's dimensions for logging.
// Failure to decode is not a validation error, it just reports no dimensions.
// Supports png, jpeg, gif and webp.
func ProfileImageDimensions(fh *multipart.FileHeader) (width, height int, ok bool) {
	if fh == nil {
		return 0, 0, false
	}

	f, err := fh.Open()
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
