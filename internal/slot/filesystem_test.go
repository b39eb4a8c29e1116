package slot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileSlot(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr bool
	}{
		{
			name:    "creates missing parent directory",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nested", "posts.json") },
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    func(t *testing.T) string { return "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			s, err := NewFileSlot(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFileSlot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, err := os.Stat(filepath.Dir(path)); err != nil {
				t.Errorf("parent directory not created: %v", err)
			}
			if s.Path() != path {
				t.Errorf("Path() = %q, want %q", s.Path(), path)
			}
		})
	}
}

func TestFileSlot_LoadMissingFile(t *testing.T) {
	s, err := NewFileSlot(filepath.Join(t.TempDir(), "posts.json"))
	if err != nil {
		t.Fatalf("NewFileSlot() error = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %q, want nil", got)
	}
}

func TestFileSlot_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	s, err := NewFileSlot(path)
	if err != nil {
		t.Fatalf("NewFileSlot() error = %v", err)
	}

	for _, content := range []string{`[{"id":"a"}]`, `[]`} {
		if err := s.Save([]byte(content)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(got) != content {
			t.Errorf("Load() = %q, want %q", got, content)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the slot file", len(entries))
	}
}
