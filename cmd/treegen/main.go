package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/keshon/treegen/internal/checkpoint"
	"github.com/keshon/treegen/internal/config"
	"github.com/keshon/treegen/internal/fs"
	"github.com/keshon/treegen/internal/ident"
	"github.com/keshon/treegen/internal/report"
	"github.com/keshon/treegen/internal/tree"
)

func main() {
	cfg := config.Load(config.ConfigFile)

	folders := flag.Int("folders", cfg.Folders, "number of folders to generate")
	files := flag.Int("files", cfg.FilesPerFolder, "files per folder")
	out := flag.String("out", cfg.BaseDir, "output directory")
	workers := flag.Int("workers", cfg.Workers, "concurrent folder workers (1 = sequential)")
	author := flag.String("author", cfg.Author, "author recorded in each file body")
	seed := flag.Int64("seed", 0, "random seed (0 = wall clock)")
	noGit := flag.Bool("no-git", !cfg.Git, "disable version-control checkpoints")
	verify := flag.Bool("verify", false, "verify the generated tree after the run")
	flag.Parse()

	opts := tree.Options{
		BaseDir:        *out,
		Folders:        *folders,
		FilesPerFolder: *files,
		WordLength:     config.WordLength,
		Author:         *author,
		Workers:        *workers,
	}

	if err := run(opts, *seed, !*noGit, *verify); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts tree.Options, seed int64, git, verify bool) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := ident.NewSource(seed)
	fsys := fs.NewOSFS()

	if err := fsys.MkdirAll(opts.BaseDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", opts.BaseDir, err)
	}

	var ckpt checkpoint.Checkpointer = checkpoint.Noop{}
	if git {
		if err := checkpoint.EnsureRepo(fsys, opts.BaseDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: repository setup failed: %v\n", err)
		}
		ckpt = checkpoint.NewGit(opts.BaseDir)
	}

	builder := tree.NewBuilder(opts, fsys, src, ckpt)

	start := time.Now()
	stats, err := builder.Run()
	if err != nil {
		return err
	}

	summary := report.NewSummary(start, time.Now(), stats)
	summaryPath := filepath.Join(opts.BaseDir, config.SummaryFile)
	if err := report.WriteSummary(summaryPath, summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write summary: %v\n", err)
	}

	if git {
		fmt.Println("Successfully created all folders and files with git commits!")
	} else {
		fmt.Println("Successfully created all folders and files!")
	}
	fmt.Printf("Folders: %d created, %d skipped. Files: %d created, %d skipped. Checkpoints failed: %d.\n",
		stats.FoldersCreated, stats.FoldersSkipped,
		stats.FilesCreated, stats.FilesSkipped,
		stats.CheckpointsFailed)

	if verify {
		res, err := report.Verify(fsys, opts.BaseDir)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if !res.OK() {
			for _, issue := range res.Issues {
				fmt.Fprintf(os.Stderr, "verify: %s: %s\n", issue.Path, issue.Reason)
			}
			return fmt.Errorf("verify: %d issue(s) in %d files", len(res.Issues), res.Files)
		}
		fmt.Printf("Verified %d folders, %d files.\n", res.Folders, res.Files)
	}

	return nil
}
