package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered set of trimmed, non-empty strings. It decodes
// from a JSON array, a JSON-encoded array inside a string, a comma separated
// string, or null, so callers never have to branch on the wire shape.
type StringList []string

func NewStringList(values ...string) StringList {
	out := make(StringList, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	switch data[0] {
	case '[':
		var raw []string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
		*l = NewStringList(raw...)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
		*l = ParseStringList(s)
		return nil
	}
	return fmt.Errorf("decode string list: unexpected token %q", data[0])
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// ParseStringList normalizes the string forms of a list: a JSON array
// serialized into text, or a comma separated value.
func ParseStringList(s string) StringList {
	s = strings.TrimSpace(s)
	if s == "" {
		return StringList{}
	}
	if strings.HasPrefix(s, "[") {
		var raw []string
		if err := json.Unmarshal([]byte(s), &raw); err == nil {
			return NewStringList(raw...)
		}
	}
	return NewStringList(strings.Split(s, ",")...)
}

func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if item == v {
			return true
		}
	}
	return false
}

func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}
