package server

import (
	"errors"
	"testing"

	"github.com/pagebridge/pagebridge/patch"
)

func TestRequireString(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"present", map[string]any{"pageId": "123"}, false},
		{"missing", map[string]any{}, true},
		{"empty", map[string]any{"pageId": "   "}, true},
		{"wrong type", map[string]any{"pageId": 42.0}, true},
		{"script tag", map[string]any{"pageId": "<script>alert(1)</script>"}, true},
		{"script tag mixed case", map[string]any{"pageId": "<ScRiPt>x"}, true},
		{"javascript uri", map[string]any{"pageId": "javascript:alert(1)"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requireString(tt.args, "pageId")
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && err != nil {
				var verr *patch.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestGetInt_JSONNumbers(t *testing.T) {
	if got := getInt(map[string]any{"v": 5.0}, "v", 0); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := getInt(map[string]any{}, "v", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}
