// Package vector flattens candidate documents into the normalized text blob
// the similarity scorer compares queries against.
package vector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agilesafe/searchd/internal/domain/search/match"
)

// Build resolves each dotted field path against the document in order,
// normalizes every resolved fragment and joins the non-empty ones with
// single spaces. A missing segment, a nil value or a non-document
// intermediate yields an empty fragment for that path.
func Build(doc map[string]any, paths []string) string {
	fragments := make([]string, 0, len(paths))
	for _, path := range paths {
		frag := match.Normalize(stringify(resolve(doc, path)))
		if frag == "" {
			continue
		}
		fragments = append(fragments, frag)
	}
	return strings.Join(fragments, " ")
}

// resolve walks the document one path segment at a time.
func resolve(doc map[string]any, path string) any {
	var cur any = doc
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// stringify renders a terminal value as text. Arrays join their elements
// with single spaces (user skill lists); documents are not text and render
// empty.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s := stringify(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []string:
		return strings.Join(t, " ")
	case map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
