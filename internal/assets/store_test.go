package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_CreateBatchDir(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir, err := store.CreateBatchDir("batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("batch dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected batch path to be a directory")
	}
}

func TestStore_FilePath(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.FilePath("abc", 2)
	want := filepath.Join(store.Root(), "abc", "vo_2.mp3")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStore_PublicURL(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "plain base",
			baseURL: "http://example.com",
			want:    "http://example.com/files/abc/vo_1.mp3",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://example.com/",
			want:    "http://example.com/files/abc/vo_1.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.PublicURL(tt.baseURL, "abc", 1); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestStore_Resolve(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		url    string
		wantOK bool
		suffix string // expected path suffix relative to root when ok
	}{
		{
			name:   "valid file url",
			url:    "http://example.com/files/abc/vo_1.mp3",
			wantOK: true,
			suffix: filepath.Join("abc", "vo_1.mp3"),
		},
		{
			name:   "relative path only",
			url:    "/files/abc/vo_2.mp3",
			wantOK: true,
			suffix: filepath.Join("abc", "vo_2.mp3"),
		},
		{
			name:   "wrong prefix",
			url:    "http://example.com/other/abc/vo_1.mp3",
			wantOK: false,
		},
		{
			name:   "empty path under prefix",
			url:    "http://example.com/files/",
			wantOK: false,
		},
		{
			name:   "traversal stays confined",
			url:    "http://example.com/files/../../etc/passwd",
			wantOK: true,
			suffix: filepath.Join("etc", "passwd"),
		},
		{
			name:   "not a url",
			url:    "://bad",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.Resolve(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (path %q)", tt.wantOK, ok, got)
			}
			if !ok {
				return
			}
			if !strings.HasPrefix(got, store.Root()) {
				t.Errorf("resolved path %q escapes root %q", got, store.Root())
			}
			want := filepath.Join(store.Root(), tt.suffix)
			if got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}
