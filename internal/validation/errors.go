package validation

import "errors"

// ErrImageTooLarge is returned when an uploaded profile image exceeds the size limit
var ErrImageTooLarge = errors.New("image exceeds the size limit")

// ErrNotAnImage is returned when an uploaded file is not an image MIME type
var ErrNotAnImage = errors.New("not an image")

// ErrUnknownMimeType is returned when no MIME type could be determined at all
var ErrUnknownMimeType = errors.New("could not detect MIME type")
