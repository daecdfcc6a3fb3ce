package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Category selects which directory collection a dashboard tab shows.
type Category string

const (
	CategoryAdmin         Category = "admin"
	CategoryInactiveAdmin Category = "inactive-admin"
	CategorySeller        Category = "seller"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAdmin, CategoryInactiveAdmin, CategorySeller:
		return true
	}
	return false
}

func (c Category) Title() string {
	switch c {
	case CategoryAdmin:
		return "Admins"
	case CategoryInactiveAdmin:
		return "Inactive Admins"
	case CategorySeller:
		return "Sellers"
	}
	return string(c)
}

// DirectoryEntry is an admin or seller row as the backend reports it.
// Entries are never constructed client-side except as ephemeral view copies.
type DirectoryEntry struct {
	ID     FlexInt `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone,omitempty"` // admin only
	Age    FlexInt `json:"age,omitempty"`   // admin only
	Status Status  `json:"status"`
}

// FlexInt decodes from a JSON number or a numeric string. Malformed values
// fall back to 0 instead of failing the whole list decode. The silent default
// is a deliberate carry-over from the backend's loose payloads; see DESIGN.md
// for why it wasn't turned into a hard error.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*f = FlexInt(IntOrDefault(s, 0))
	return nil
}

// IntOrDefault parses s as an integer, returning def when it isn't one.
func IntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// listShape discriminates the response layouts the backend is known to emit.
type listShape int

const (
	shapeBare      listShape = iota // [ {...}, ... ]
	shapeEnveloped                  // {"data": [...]} or {"success": true, "data": [...]}
	shapeInvalid
)

type listEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func classifyListPayload(data []byte) listShape {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		return shapeBare
	case strings.HasPrefix(trimmed, "{"):
		return shapeEnveloped
	}
	return shapeInvalid
}

// DecodeList accepts either a bare JSON array or an envelope wrapping one
// under "data", and always yields a bare ordered slice.
func DecodeList[T any](data []byte) ([]T, error) {
	switch classifyListPayload(data) {
	case shapeBare:
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("cannot decode list: %w", err)
		}
		return items, nil
	case shapeEnveloped:
		var env listEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("cannot decode list envelope: %w", err)
		}
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("list envelope has no data field")
		}
		var items []T
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("cannot decode enveloped list: %w", err)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("list response is neither an array nor an envelope")
	}
}

// DecodeDirectoryList normalizes a directory list response.
func DecodeDirectoryList(data []byte) ([]DirectoryEntry, error) {
	return DecodeList[DirectoryEntry](data)
}
