package types

import (
	"sort"
	"strings"
)

// Attributes holds a variant's key/value options (size, color, ...). Some
// backends stuff image paths into the same map, so display helpers filter
// URL-like entries out.
type Attributes map[string]string

var imageAttributeKeys = map[string]struct{}{
	"image_url":      {},
	"thumbnail_url":  {},
	"thumbnail":      {},
	"variant_images": {},
	"images":         {},
}

// IsImagePath reports whether a value looks like an image reference rather
// than a displayable attribute value.
func IsImagePath(value string) bool {
	return strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://") ||
		strings.Contains(value, "/uploads/")
}

// Pair is a displayable attribute entry.
type Pair struct {
	Key   string
	Value string
}

// DisplayPairs returns the attribute entries worth showing to the user,
// sorted by key, with image keys and URL-like values filtered out.
func (a Attributes) DisplayPairs() []Pair {
	pairs := make([]Pair, 0, len(a))
	for key, value := range a {
		if _, isImageKey := imageAttributeKeys[strings.ToLower(key)]; isImageKey {
			continue
		}
		if IsImagePath(value) {
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs
}

// DisplayString renders the displayable attributes as "key: value, ...".
func (a Attributes) DisplayString() string {
	pairs := a.DisplayPairs()
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.Key+": "+pair.Value)
	}
	return strings.Join(parts, ", ")
}

// ImagePath returns the first URL-like attribute value, if any.
func (a Attributes) ImagePath() string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if IsImagePath(a[key]) {
			return a[key]
		}
	}
	return ""
}
