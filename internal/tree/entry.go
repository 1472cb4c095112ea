package tree

import (
	"fmt"
	"strings"
)

// FolderEntry names one generated directory: a 4-digit zero-padded
// sequential index plus the folder's random word.
type FolderEntry struct {
	Index int
	Word  string
}

func (e FolderEntry) Name() string {
	return fmt.Sprintf("%04d_%s", e.Index, e.Word)
}

// FileEntry names one generated file inside its owning folder.
// The folder's word is embedded twice, once via the folder name prefix.
type FileEntry struct {
	Folder    FolderEntry
	Timestamp string
}

func (e FileEntry) Name() string {
	return fmt.Sprintf("%s_%s.txt", e.Folder.Name(), e.Timestamp)
}

// Body renders the fixed six-line file content, newline-terminated.
func (e FileEntry) Body(author, uuid string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Timestamp: %s\n", e.Timestamp)
	fmt.Fprintf(&b, "Date: %s\n", e.Timestamp[:10])
	fmt.Fprintf(&b, "Created by: %s\n", author)
	fmt.Fprintf(&b, "Folder: %s\n", e.Folder.Name())
	fmt.Fprintf(&b, "File: %s\n", e.Name())
	fmt.Fprintf(&b, "UUID: %s\n", uuid)
	return []byte(b.String())
}
