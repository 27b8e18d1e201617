package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MediaItem is one uploaded image or video attached to an event.
// Rotation is a display-only transform in degrees: 0, 90, 180 or 270.
type MediaItem struct {
	URL      string `json:"url" binding:"required"`
	Rotation int    `json:"rotation" binding:"rotation"`
}

// MediaList is the canonical in-memory form of the overflow media column.
// Stored rows may hold a JSON array of URL strings, a JSON array of
// {url, rotation} objects, a mix of both, or a single bare URL.
type MediaList []MediaItem

// ValidRotation reports whether deg is one of the supported quarter turns.
func ValidRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// NormalizeRotation folds any angle onto the nearest supported quarter turn.
func NormalizeRotation(deg int) int {
	r := ((deg % 360) + 360) % 360
	return ((r + 45) / 90 * 90) % 360
}

// ParseMediaList reads any accepted stored shape. Rotations are normalized,
// items without a URL are dropped.
func ParseMediaList(raw []byte) (MediaList, error) {
	items, err := decodeMedia(raw, 0)
	if err != nil {
		return nil, err
	}
	out := make(MediaList, 0, len(items))
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		item.Rotation = NormalizeRotation(item.Rotation)
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func decodeMedia(raw []byte, depth int) (MediaList, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
			return nil, fmt.Errorf("invalid media list: %w", err)
		}
		out := make(MediaList, 0, len(elems))
		for _, elem := range elems {
			item, err := decodeMediaItem(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case '{':
		item, err := decodeMediaItem([]byte(trimmed))
		if err != nil {
			return nil, err
		}
		return MediaList{item}, nil
	case '"':
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return nil, fmt.Errorf("invalid media string: %w", err)
		}
		// double-encoded arrays show up in rows written by the old admin panel
		s = strings.TrimSpace(s)
		if depth == 0 && (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) {
			return decodeMedia([]byte(s), depth+1)
		}
		if s == "" {
			return nil, nil
		}
		return MediaList{{URL: s}}, nil
	default:
		return MediaList{{URL: trimmed}}, nil
	}
}

func decodeMediaItem(elem json.RawMessage) (MediaItem, error) {
	trimmed := strings.TrimSpace(string(elem))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			return MediaItem{}, fmt.Errorf("invalid media url: %w", err)
		}
		return MediaItem{URL: strings.TrimSpace(s)}, nil
	}

	var obj struct {
		URL      string      `json:"url"`
		Rotation interface{} `json:"rotation"`
	}
	if err := json.Unmarshal(elem, &obj); err != nil {
		return MediaItem{}, fmt.Errorf("invalid media item: %w", err)
	}

	rotation := 0
	switch r := obj.Rotation.(type) {
	case float64:
		rotation = int(math.Round(r))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(r)); err == nil {
			rotation = n
		}
	}
	return MediaItem{URL: strings.TrimSpace(obj.URL), Rotation: rotation}, nil
}

// URLs returns the media URLs in order.
func (m MediaList) URLs() []string {
	urls := make([]string, 0, len(m))
	for _, item := range m {
		urls = append(urls, item.URL)
	}
	return urls
}

// Value implements driver.Valuer interface for database storage
func (m MediaList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]MediaItem(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (m *MediaList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MediaList", value)
	}

	list, err := ParseMediaList(raw)
	if err != nil {
		return err
	}
	*m = list
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (m MediaList) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]MediaItem(m))
}

// UnmarshalJSON accepts every shape ParseMediaList does but keeps rotations as
// sent, so request validation can reject unsupported angles.
func (m *MediaList) UnmarshalJSON(data []byte) error {
	items, err := decodeMedia(data, 0)
	if err != nil {
		return err
	}
	*m = items
	return nil
}
