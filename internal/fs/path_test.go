package fs

import (
	"testing"
)

func TestVirtualPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		isRoot   bool
	}{
		{
			name:     "root path",
			input:    "/",
			expected: "/",
			isRoot:   true,
		},
		{
			name:     "empty path is root",
			input:    "",
			expected: "/",
			isRoot:   true,
		},
		{
			name:     "relative path made absolute",
			input:    "dir/test.txt",
			expected: "/dir/test.txt",
		},
		{
			name:     "trailing slash removed",
			input:    "/dir/",
			expected: "/dir",
		},
		{
			name:     "repeated separators collapsed",
			input:    "//dir//sub",
			expected: "/dir/sub",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewVirtualPath(tt.input)
			if got := vp.String(); got != tt.expected {
				t.Errorf("NewVirtualPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if got := vp.IsRoot(); got != tt.isRoot {
				t.Errorf("IsRoot() = %v, want %v", got, tt.isRoot)
			}
		})
	}
}

func TestVirtualPathJoin(t *testing.T) {
	tests := []struct {
		base     string
		name     string
		expected string
		baseName string
	}{
		{base: "/", name: "a", expected: "/a", baseName: "a"},
		{base: "/a", name: "b", expected: "/a/b", baseName: "b"},
		{base: "/a/b", name: "c.txt", expected: "/a/b/c.txt", baseName: "c.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			joined := NewVirtualPath(tt.base).Join(tt.name)
			if got := joined.String(); got != tt.expected {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.expected)
			}
			if got := joined.Base(); got != tt.baseName {
				t.Errorf("Base() = %q, want %q", got, tt.baseName)
			}
		})
	}
}
