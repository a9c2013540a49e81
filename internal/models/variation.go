package models

import (
	"sort"
	"strings"
)

// VariationKey encodes one attribute combination as sorted "Attribute:Value"
// segments joined by VariationSeparator. The empty key is base stock.
type VariationKey string

const (
	BaseVariation      VariationKey = ""
	VariationSeparator              = "|"
)

// NewVariationKey builds the canonical key for an attribute set.
func NewVariationKey(attributes map[string]string) VariationKey {
	segments := make([]string, 0, len(attributes))
	for attr, value := range attributes {
		attr = strings.TrimSpace(attr)
		value = strings.TrimSpace(value)
		if attr == "" || value == "" {
			continue
		}
		segments = append(segments, attr+":"+value)
	}
	sort.Strings(segments)
	return VariationKey(strings.Join(segments, VariationSeparator))
}

// ParseVariationKey canonicalizes a stored key: segments are trimmed, empty
// segments dropped and the remainder sorted. Case is preserved.
func ParseVariationKey(raw string) VariationKey {
	if strings.TrimSpace(raw) == "" {
		return BaseVariation
	}
	parts := strings.Split(raw, VariationSeparator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	sort.Strings(segments)
	return VariationKey(strings.Join(segments, VariationSeparator))
}

// IsBase reports whether the key denotes base stock.
func (k VariationKey) IsBase() bool {
	return k == BaseVariation
}

// Fold lowercases the key. Only used when case-insensitive matching is enabled.
func (k VariationKey) Fold() VariationKey {
	return ParseVariationKey(strings.ToLower(string(k)))
}

func (k VariationKey) String() string {
	return string(k)
}
