package songs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"
)

func newLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"songs/a", "songs/b", "songs/.hidden"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "songs", "c.txt"), []byte("not a song"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListFiltersHiddenAndFiles(t *testing.T) {
	root := newLibrary(t)
	service := NewSongService(os.DirFS(root), "songs")

	got, err := service.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if want := []string{"a", "b"}; !equal(sorted(got), want) {
		t.Errorf("Expected songs %v, got %v", want, got)
	}
}

func TestListMissingDirectory(t *testing.T) {
	service := NewSongService(os.DirFS(t.TempDir()), "songs")

	got, err := service.List()
	if err == nil {
		t.Fatalf("Expected error for missing songs directory, got %v", got)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestListSongsIsAFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "songs"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	service := NewSongService(os.DirFS(root), "songs")

	if _, err := service.List(); err == nil {
		t.Error("Expected error when songs is a regular file")
	}
}

func TestListEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "songs"), 0o755); err != nil {
		t.Fatal(err)
	}
	service := NewSongService(os.DirFS(root), "songs")

	got, err := service.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", got)
	}
}

func TestListReflectsChangesBetweenCalls(t *testing.T) {
	root := newLibrary(t)
	service := NewSongService(os.DirFS(root), "songs")

	first, err := service.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 songs, got %v", first)
	}

	if err := os.Mkdir(filepath.Join(root, "songs", "new-song"), 0o755); err != nil {
		t.Fatal(err)
	}

	second, err := service.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if want := []string{"a", "b", "new-song"}; !equal(sorted(second), want) {
		t.Errorf("Expected songs %v, got %v", want, second)
	}
}

func TestListFollowsSymlinks(t *testing.T) {
	root := newLibrary(t)
	target := t.TempDir()
	if err := os.Symlink(target, filepath.Join(root, "songs", "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "songs", "c.txt"), filepath.Join(root, "songs", "file-link")); err != nil {
		t.Fatal(err)
	}

	got, err := NewSongService(os.DirFS(root), "songs").List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if want := []string{"a", "b", "linked"}; !equal(sorted(got), want) {
		t.Errorf("Expected songs %v, got %v", want, got)
	}
}

func TestListUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := newLibrary(t)
	songsDir := filepath.Join(root, "songs")
	if err := os.Chmod(songsDir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(songsDir, 0o755) })

	_, err := NewSongService(os.DirFS(root), "songs").List()
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected fs.ErrPermission, got %v", err)
	}
}

func TestListNestedDirWithMapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"library/songs/one/lyrics.lrc": &fstest.MapFile{Data: []byte("[00:01.00]hi")},
		"library/songs/two":            &fstest.MapFile{Mode: fs.ModeDir},
		"library/songs/.git/HEAD":      &fstest.MapFile{},
		"library/songs/readme.md":      &fstest.MapFile{},
	}

	got, err := NewSongService(fsys, "library/songs/").List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if want := []string{"one", "two"}; !equal(sorted(got), want) {
		t.Errorf("Expected songs %v, got %v", want, got)
	}
}
