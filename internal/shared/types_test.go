package shared

import (
	"strings"
	"testing"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name     string
		slice    StringSlice
		expected string
	}{
		{
			name:     "empty slice",
			slice:    StringSlice{},
			expected: "[]",
		},
		{
			name:     "nil slice",
			slice:    nil,
			expected: "[]",
		},
		{
			name:     "single item",
			slice:    StringSlice{"peacock"},
			expected: `["peacock"]`,
		},
		{
			name:     "multiple items",
			slice:    StringSlice{"blue", "stars", "moon"},
			expected: `["blue","stars","moon"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.slice.Value()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			str, ok := result.([]byte)
			if !ok {
				s, ok := result.(string)
				if !ok {
					t.Fatalf("expected string or []byte, got %T", result)
				}
				str = []byte(s)
			}
			if string(str) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, string(str))
			}
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	t.Run("nil value", func(t *testing.T) {
		var s StringSlice
		if err := s.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != nil {
			t.Errorf("expected nil slice, got %v", s)
		}
	})

	t.Run("bytes", func(t *testing.T) {
		var s StringSlice
		if err := s.Scan([]byte(`["a","b"]`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s) != 2 || s[0] != "a" || s[1] != "b" {
			t.Errorf("unexpected result: %v", s)
		}
	})

	t.Run("string", func(t *testing.T) {
		var s StringSlice
		if err := s.Scan(`["x"]`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s) != 1 || s[0] != "x" {
			t.Errorf("unexpected result: %v", s)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		var s StringSlice
		if err := s.Scan(42); err == nil {
			t.Error("expected error for int input")
		}
	})
}

func TestNewID(t *testing.T) {
	id := NewID("sess_")
	if !strings.HasPrefix(id, "sess_") {
		t.Errorf("expected prefix 'sess_', got %s", id)
	}
	if len(id) != len("sess_")+32 {
		t.Errorf("expected 32 hex chars after prefix, got %d", len(id)-len("sess_"))
	}

	other := NewID("sess_")
	if id == other {
		t.Error("expected distinct ids")
	}
}
