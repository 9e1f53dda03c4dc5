package utils

import (
	"runtime"
	"testing"
)

func TestGetAbsolutePath_AlreadyAbsolute(t *testing.T) {
	var absolutePath string
	if runtime.GOOS == "windows" {
		absolutePath = "C:\\test\\file.txt"
	} else {
		absolutePath = "/test/file.txt"
	}

	result := GetAbsolutePath(absolutePath, "/base/dir")

	if result != absolutePath {
		t.Errorf("Expected %s, got %s", absolutePath, result)
	}
}

func TestGetAbsolutePath_Relative(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		path string
		want string
	}{
		{"relative/file.txt", "/base/dir/relative/file.txt"},
		{"./file.txt", "/base/dir/file.txt"},
		{"../file.txt", "/base/file.txt"},
		{"untrusted.hosts", "/base/dir/untrusted.hosts"},
	}

	for _, tt := range tests {
		if got := GetAbsolutePath(tt.path, "/base/dir"); got != tt.want {
			t.Errorf("GetAbsolutePath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestGetAbsolutePath_EmptyPath(t *testing.T) {
	if result := GetAbsolutePath("", "/base/dir"); result != "" {
		t.Errorf("Expected empty path to stay empty, got %s", result)
	}
}
