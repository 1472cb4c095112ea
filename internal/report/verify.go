package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/mmap"

	"github.com/keshon/treegen/internal/fs"
	"github.com/keshon/treegen/internal/progress"
	"github.com/keshon/treegen/internal/util"
)

var (
	folderNameRe = regexp.MustCompile(`^\d{4}_[0-9A-Za-z]+$`)
	fileNameRe   = regexp.MustCompile(`^\d{4}_[0-9A-Za-z]+_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}-\d{6}\.txt$`)
	uuidRe       = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

// Issue is one contract violation found while verifying the tree.
type Issue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result of a verification pass over a generated tree.
type Result struct {
	Folders  int               `json:"folders"`
	Files    int               `json:"files"`
	Manifest map[string]string `json:"manifest"` // relative path -> xxh3-128 hex
	Issues   []Issue           `json:"issues,omitempty"`
}

func (r *Result) OK() bool { return len(r.Issues) == 0 }

// Verify runs VerifyTree with a progress bar, one tick per folder.
func Verify(fsys fs.FS, baseDir string) (*Result, error) {
	folders, err := listFolders(fsys, baseDir)
	if err != nil {
		return nil, err
	}

	bar := progress.NewTracker(len(folders), "Verifying folders")
	defer bar.Finish()

	return verifyFolders(fsys, baseDir, folders, bar)
}

// VerifyTree re-walks a generated tree and checks the naming scheme, the
// six-line body contract and the UUID shape of every file, hashing each
// one into the integrity manifest. Bodies are read through a memory-mapped
// view when fsys is the real filesystem, and through fsys otherwise.
func VerifyTree(fsys fs.FS, baseDir string) (*Result, error) {
	folders, err := listFolders(fsys, baseDir)
	if err != nil {
		return nil, err
	}
	return verifyFolders(fsys, baseDir, folders, nil)
}

func listFolders(fsys fs.FS, baseDir string) ([]string, error) {
	entries, err := fsys.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base directory %q: %w", baseDir, err)
	}

	var folders []string
	for _, e := range entries {
		// the repository dir and run artifacts live next to the tree
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		folders = append(folders, e.Name())
	}
	sort.Strings(folders)
	return folders, nil
}

func verifyFolders(fsys fs.FS, baseDir string, folders []string, bar *progress.Tracker) (*Result, error) {
	res := &Result{Manifest: make(map[string]string)}
	var mu sync.Mutex

	addIssue := func(path, reason string) {
		mu.Lock()
		res.Issues = append(res.Issues, Issue{Path: path, Reason: reason})
		mu.Unlock()
	}

	err := util.Parallel(folders, util.WorkerCount(), func(folder string) error {
		if !folderNameRe.MatchString(folder) {
			addIssue(folder, "folder name does not match NNNN_<word>")
		}

		dir := filepath.Join(baseDir, folder)
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read folder %q: %w", dir, err)
		}

		files := 0
		for _, e := range entries {
			rel := filepath.Join(folder, e.Name())
			if e.IsDir() {
				addIssue(rel, "unexpected nested directory")
				continue
			}
			files++

			if !fileNameRe.MatchString(e.Name()) {
				addIssue(rel, "file name does not match <folder>_<timestamp>.txt")
				continue
			}
			if !strings.HasPrefix(e.Name(), folder+"_") {
				addIssue(rel, "file name does not start with its folder name")
				continue
			}

			data, err := readBody(fsys, filepath.Join(dir, e.Name()))
			if err != nil {
				addIssue(rel, fmt.Sprintf("unreadable: %v", err))
				continue
			}

			if reason := checkBody(folder, e.Name(), data); reason != "" {
				addIssue(rel, reason)
			}

			sum := xxh3.Hash128(data).Bytes()
			mu.Lock()
			res.Manifest[rel] = fmt.Sprintf("%x", sum)
			mu.Unlock()
		}

		mu.Lock()
		res.Folders++
		res.Files += files
		mu.Unlock()

		if bar != nil {
			bar.Increment()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(res.Issues, func(i, j int) bool { return res.Issues[i].Path < res.Issues[j].Path })
	return res, nil
}

// checkBody validates the fixed six-line body. Returns the first
// violation found, or "" when the body is well-formed.
func checkBody(folderName, fileName string, data []byte) string {
	lines := strings.Split(string(data), "\n")
	if len(lines) != 7 || lines[6] != "" {
		return "body is not exactly six newline-terminated lines"
	}

	prefixes := []string{"Timestamp: ", "Date: ", "Created by: ", "Folder: ", "File: ", "UUID: "}
	for i, p := range prefixes {
		if !strings.HasPrefix(lines[i], p) {
			return fmt.Sprintf("line %d does not start with %q", i+1, p)
		}
	}

	ts := strings.TrimPrefix(lines[0], "Timestamp: ")
	if len(ts) < 10 {
		return "timestamp too short"
	}
	if _, err := time.Parse("2006-01-02", ts[:10]); err != nil {
		return "timestamp does not start with a calendar date"
	}
	if lines[1] != "Date: "+ts[:10] {
		return "date line does not match the timestamp prefix"
	}
	if lines[3] != "Folder: "+folderName {
		return "folder line does not match the parent directory"
	}
	if lines[4] != "File: "+fileName {
		return "file line does not match the file name"
	}
	if fileName != folderName+"_"+ts+".txt" {
		return "file name does not embed the body timestamp"
	}
	if !uuidRe.MatchString(strings.TrimPrefix(lines[5], "UUID: ")) {
		return "uuid is not a canonical v4 value"
	}
	return ""
}

// readBody picks the read path: mmap is only meaningful against the real
// filesystem, so any other FS (MemoryFS, test fakes) reads through itself.
func readBody(fsys fs.FS, path string) ([]byte, error) {
	if _, ok := fsys.(*fs.OSFS); ok {
		return readFileMapped(path)
	}
	return fsys.ReadFile(path)
}

// hook used for testing (overridable)
var readFileMapped = func(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if r.Len() == 0 {
		return data, nil
	}
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}

func GetReadFileMapped() func(string) ([]byte, error)  { return readFileMapped }
func SetReadFileMapped(f func(string) ([]byte, error)) { readFileMapped = f }
