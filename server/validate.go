package server

import (
	"fmt"
	"strings"

	"github.com/pagebridge/pagebridge/patch"
)

// unsafeFragments are markup sequences rejected in any string argument
// that ends up in a page. Matching is case-insensitive.
var unsafeFragments = []string{"<script", "javascript:"}

// requireString returns a non-empty, safe string argument.
func requireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", &patch.ValidationError{Field: key, Reason: "is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &patch.ValidationError{Field: key, Reason: fmt.Sprintf("must be a string, got %T", raw)}
	}
	if strings.TrimSpace(s) == "" {
		return "", &patch.ValidationError{Field: key, Reason: "must not be empty"}
	}
	if err := checkSafe(key, s); err != nil {
		return "", err
	}
	return s, nil
}

func checkSafe(key, s string) error {
	lower := strings.ToLower(s)
	for _, frag := range unsafeFragments {
		if strings.Contains(lower, frag) {
			return &patch.ValidationError{Field: key, Reason: fmt.Sprintf("contains unsafe markup sequence %q", frag)}
		}
	}
	return nil
}

// getString returns a string argument or def when absent.
func getString(args map[string]any, key, def string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return def
}

// getInt returns an integer argument or def when absent. JSON numbers
// arrive as float64.
func getInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// getBool returns a boolean argument or def when absent.
func getBool(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}
