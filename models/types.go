// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is a list of free-form tags. Older rows store tags as a comma-joined
// string, newer ones as a JSON array; both are accepted on read and the value
// is always written back as a JSON array.
type TagList []string

// ParseTags normalizes either wire shape into a TagList.
func ParseTags(raw string) TagList {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return cleanTags(items)
		}
	}

	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(items []string) TagList {
	out := make(TagList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Value implements driver.Valuer interface for database storage
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (t *TagList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = nil
	case []byte:
		*t = ParseTags(string(v))
	case string:
		*t = ParseTags(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts a JSON array of strings or a single comma-joined string.
func (t *TagList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseTags(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("tags must be an array of strings or a comma separated string: %w", err)
	}
	*t = cleanTags(items)
	return nil
}
