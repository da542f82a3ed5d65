package registry

import (
	"fmt"
	"strings"
)

// Segmenter turns a key into the edge symbols stored in the tree and back.
// Join(Split(key)) must give back an equivalent key.
type Segmenter interface {
	Name() string
	Split(key string) []string
	Join(segments []string) string
}

type (
	runeSegmenter struct{} // "cart" -> c, a, r, t
	pathSegmenter struct{} // "/usr/local" -> usr, local
	wordSegmenter struct{} // "new york city" -> new, york, city
)

var (
	RuneSegmenter Segmenter = runeSegmenter{}
	PathSegmenter Segmenter = pathSegmenter{}
	WordSegmenter Segmenter = wordSegmenter{}
)

// SegmenterByName returns one of the built-in segmenters.
func SegmenterByName(name string) (Segmenter, error) {
	for _, s := range []Segmenter{RuneSegmenter, PathSegmenter, WordSegmenter} {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown segmenter %q", name)
}

func (runeSegmenter) Name() string { return "rune" }

func (runeSegmenter) Split(key string) []string {
	segments := make([]string, 0, len(key))
	for _, r := range key {
		segments = append(segments, string(r))
	}
	return segments
}

func (runeSegmenter) Join(segments []string) string {
	return strings.Join(segments, "")
}

func (pathSegmenter) Name() string { return "path" }

// empty segments, as in "//a" or "a/", are dropped
func (pathSegmenter) Split(key string) []string {
	segments := []string{}
	for _, part := range strings.Split(key, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func (pathSegmenter) Join(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

func (wordSegmenter) Name() string { return "word" }

func (wordSegmenter) Split(key string) []string {
	return strings.Fields(key)
}

func (wordSegmenter) Join(segments []string) string {
	return strings.Join(segments, " ")
}
