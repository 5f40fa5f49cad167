package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
)

func TestWrappedFS_Exists(t *testing.T) {
	w := &WrappedFS{FS: fstest.MapFS{
		"msgformat.hcl":     {Data: []byte("settings {}")},
		"sub/msgformat.hcl": {Data: []byte("")},
		"dir":               {Mode: fs.ModeDir},
	}}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "root file", path: "msgformat.hcl", want: true},
		{name: "nested file", path: "sub/msgformat.hcl", want: true},
		{name: "directory", path: "dir", want: false},
		{name: "implicit directory", path: "sub", want: false},
		{name: "missing", path: "nope.hcl", want: false},
		{name: "parent escape", path: "../msgformat.hcl", want: false},
		{name: "absolute", path: "/msgformat.hcl", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Exists(tt.path); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewWrappedFS(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("package pkg\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWrappedFS(root)
	data, err := w.ReadFile("pkg/a.go")
	if err != nil || string(data) != "package pkg\n" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	if !w.Exists("pkg/a.go") || w.Exists("pkg") {
		t.Error("Exists should report the file and not the directory")
	}

	var seen []string
	err = w.WalkDir(".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		seen = append(seen, p)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir: %v", err)
	}
	if !slices.Equal(seen, []string{".", "pkg", "pkg/a.go"}) {
		t.Errorf("walked %v", seen)
	}
}
