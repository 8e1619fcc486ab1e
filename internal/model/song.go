package model

// SongList is the body of GET /songs: the names of the song directories,
// in directory enumeration order.
type SongList []string

// Names returns the list as a non-nil slice so an empty library encodes as [].
func (l SongList) Names() []string {
	if l == nil {
		return []string{}
	}
	return l
}
