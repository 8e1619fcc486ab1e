package songs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/iamvkosarev/karaoke-server/internal/model"
)

type SongService struct {
	fsys fs.FS
	dir  string
}

// NewSongService lists song directories found in dir inside fsys.
func NewSongService(fsys fs.FS, dir string) *SongService {
	return &SongService{
		fsys: fsys,
		dir:  path.Clean(dir),
	}
}

// List reads the songs directory on every call. Entries are kept in the
// order the directory yields them; nothing is sorted or validated beyond
// being a non-hidden directory.
func (s *SongService) List() (model.SongList, error) {
	f, err := s.fsys.Open(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open songs directory: %w", err)
	}
	defer f.Close()

	dir, ok := f.(fs.ReadDirFile)
	if !ok {
		return nil, fmt.Errorf("failed to list songs directory %s: not a directory", s.dir)
	}

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs directory: %w", err)
	}

	songs := make(model.SongList, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !s.isDir(entry) {
			continue
		}
		songs = append(songs, entry.Name())
	}

	return songs, nil
}

// isDir follows symlinks so a linked song folder counts as a song.
func (s *SongService) isDir(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(s.fsys, path.Join(s.dir, entry.Name()))
	if err != nil {
		return false
	}
	return info.IsDir()
}
