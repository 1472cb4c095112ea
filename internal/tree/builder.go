// Package tree drives the generation pipeline: it enumerates folders and
// files in deterministic order, derives their names and contents from the
// identifier source, performs the filesystem mutations and checkpoints
// each one before moving on.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/keshon/treegen/internal/checkpoint"
	"github.com/keshon/treegen/internal/fs"
	"github.com/keshon/treegen/internal/ident"
	"github.com/keshon/treegen/internal/util"
)

// Options configure one generation run.
type Options struct {
	BaseDir        string
	Folders        int
	FilesPerFolder int
	WordLength     int
	Author         string

	// Workers is the number of concurrent folder workers.
	// 1 (or less) runs strictly sequentially.
	Workers int
}

// Stats counts the outcome of a run. Recoverable failures are counted,
// never propagated.
type Stats struct {
	FoldersCreated    int `json:"folders_created"`
	FoldersSkipped    int `json:"folders_skipped"`
	FilesCreated      int `json:"files_created"`
	FilesSkipped      int `json:"files_skipped"`
	CheckpointsFailed int `json:"checkpoints_failed"`
}

type Builder struct {
	opts Options
	fsys fs.FS
	src  *ident.Source
	ckpt checkpoint.Checkpointer

	// outMu serializes writes to out/errw: parallel folder workers all
	// report through the same injected writers.
	outMu sync.Mutex
	out   io.Writer // progress lines
	errw  io.Writer // warnings

	mu    sync.Mutex
	stats Stats
}

func NewBuilder(opts Options, fsys fs.FS, src *ident.Source, ckpt checkpoint.Checkpointer) *Builder {
	return &Builder{
		opts: opts,
		fsys: fsys,
		src:  src,
		ckpt: ckpt,
		out:  os.Stdout,
		errw: os.Stderr,
	}
}

// SetOutput redirects progress lines and warnings, mainly for tests.
func (b *Builder) SetOutput(out, errw io.Writer) {
	b.out = out
	b.errw = errw
}

// Run generates the whole tree. Only base-directory creation is fatal;
// every per-folder and per-file failure is warned about and skipped.
func (b *Builder) Run() (Stats, error) {
	if err := b.fsys.MkdirAll(b.opts.BaseDir, 0o755); err != nil {
		return b.snapshot(), fmt.Errorf("create base directory %q: %w", b.opts.BaseDir, err)
	}

	b.printf("Generating %d folders x %d files into %s\n",
		b.opts.Folders, b.opts.FilesPerFolder, b.opts.BaseDir)

	if b.opts.Workers > 1 {
		indices := make([]int, b.opts.Folders)
		for i := range indices {
			indices[i] = i + 1
		}
		// buildFolder never returns an error; failures are counted
		util.Parallel(indices, b.opts.Workers, func(idx int) error {
			b.buildFolder(idx)
			return nil
		})
	} else {
		for idx := 1; idx <= b.opts.Folders; idx++ {
			b.buildFolder(idx)
		}
	}

	b.printf("All folders processed.\n")
	return b.snapshot(), nil
}

// buildFolder owns one folder end to end: directory creation, all of its
// files, and their checkpoints.
func (b *Builder) buildFolder(idx int) {
	folder := FolderEntry{Index: idx, Word: b.src.Word(b.opts.WordLength)}
	dir := filepath.Join(b.opts.BaseDir, folder.Name())

	if err := b.fsys.MkdirAll(dir, 0o755); err != nil {
		b.warnf("skipping folder %s: %v", folder.Name(), err)
		b.count(func(s *Stats) { s.FoldersSkipped++ })
		return
	}

	b.emit(fmt.Sprintf("Created folder: %s", folder.Name()))

	for i := 0; i < b.opts.FilesPerFolder; i++ {
		b.buildFile(folder, dir)
	}

	b.count(func(s *Stats) { s.FoldersCreated++ })
	b.printf("Completed folder %d/%d: %s\n", idx, b.opts.Folders, folder.Name())
}

func (b *Builder) buildFile(folder FolderEntry, dir string) {
	file := FileEntry{Folder: folder, Timestamp: ident.Timestamp()}
	body := file.Body(b.opts.Author, b.src.UUID())
	path := filepath.Join(dir, file.Name())

	if err := b.fsys.WriteFile(path, body, 0o644); err != nil {
		b.warnf("skipping file %s: %v", file.Name(), err)
		b.count(func(s *Stats) { s.FilesSkipped++ })
		return
	}

	b.count(func(s *Stats) { s.FilesCreated++ })
	b.emit(fmt.Sprintf("Created file in %s: %s", folder.Name(), file.Name()))
}

// emit requests one checkpoint. A failed checkpoint is a warning,
// never a reason to stop generating.
func (b *Builder) emit(message string) {
	if err := b.ckpt.Checkpoint(message); err != nil {
		b.warnf("checkpoint failed (%s): %v", message, err)
		b.count(func(s *Stats) { s.CheckpointsFailed++ })
	}
}

func (b *Builder) printf(format string, args ...any) {
	b.outMu.Lock()
	fmt.Fprintf(b.out, format, args...)
	b.outMu.Unlock()
}

func (b *Builder) warnf(format string, args ...any) {
	b.outMu.Lock()
	fmt.Fprintf(b.errw, "warning: "+format+"\n", args...)
	b.outMu.Unlock()
}

func (b *Builder) count(fn func(*Stats)) {
	b.mu.Lock()
	fn(&b.stats)
	b.mu.Unlock()
}

func (b *Builder) snapshot() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
