package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/treegen/internal/fs"
)

func TestOSFS_WriteFile(t *testing.T) {
	called := false
	fsys := fs.NewOSFS()

	orig := fs.GetWriteFile()
	defer fs.SetWriteFile(orig)

	fs.SetWriteFile(func(path string, data []byte, perm os.FileMode) error {
		called = true
		if path != "aaa" || string(data) != "bbb" || perm != 0o644 {
			t.Fatalf("unexpected write args")
		}
		return nil
	})

	if err := fsys.WriteFile("aaa", []byte("bbb"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("writeFile hook not called")
	}
}

func TestOSFS_ReadFile(t *testing.T) {
	called := false
	fsys := fs.NewOSFS()

	orig := fs.GetReadFile()
	defer fs.SetReadFile(orig)

	fs.SetReadFile(func(path string) ([]byte, error) {
		called = true
		return []byte("hello"), nil
	})

	out, err := fsys.ReadFile("x")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("readFile hook not called")
	}
	if string(out) != "hello" {
		t.Fatalf("expected hello, got %s", out)
	}
}

func TestOSFS_MkdirAll(t *testing.T) {
	called := false
	fsys := fs.NewOSFS()

	orig := fs.GetMkdirAll()
	defer fs.SetMkdirAll(orig)

	fs.SetMkdirAll(func(path string, perm os.FileMode) error {
		called = true
		if perm != 0o755 {
			t.Fatalf("unexpected perm")
		}
		return errors.New("mkdir-failed")
	})

	if err := fsys.MkdirAll("dir123", 0o755); err == nil || err.Error() != "mkdir-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("mkdirAll hook not called")
	}
}

func TestOSFS_MkdirAllIdempotentOnDisk(t *testing.T) {
	tmp := t.TempDir()
	fsys := fs.NewOSFS()
	dir := filepath.Join(tmp, "base", "sub")

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "keep.txt")
	if err := fsys.WriteFile(file, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Second creation must not error or delete existing content
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if !fsys.Exists(file) {
		t.Fatal("existing content lost after repeated MkdirAll")
	}
}

func TestOSFS_CreateTempFile(t *testing.T) {
	tmp := t.TempDir()
	fsys := fs.NewOSFS()

	wc, name, err := fsys.CreateTempFile(tmp, "x-*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wc.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := fsys.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abc" {
		t.Fatalf("expected abc, got %s", data)
	}
}

func TestOSFS_ExistsAndIsDir(t *testing.T) {
	tmp := t.TempDir()
	fsys := fs.NewOSFS()

	tmpFile := filepath.Join(tmp, "x")
	os.WriteFile(tmpFile, []byte("1"), 0o644)

	if !fsys.Exists(tmpFile) {
		t.Fatal("expected file to exist")
	}
	if !fsys.IsDir(tmp) {
		t.Fatalf("expected %s to be a dir", tmp)
	}
	if fsys.IsDir(tmpFile) {
		t.Fatal("file reported as dir")
	}
	if fsys.Exists(filepath.Join(tmp, "missing")) {
		t.Fatal("unexpected exists true")
	}
}

func TestOSFS_IsNotExist(t *testing.T) {
	fsys := fs.NewOSFS()
	_, err := fsys.Stat(filepath.Join(t.TempDir(), "missing"))
	if !fsys.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
