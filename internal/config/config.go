package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/keshon/treegen/internal/util"
)

const (
	DefaultBaseDir        = "generated_folders"
	DefaultFolders        = 1000
	DefaultFilesPerFolder = 100
	DefaultWorkers        = 1

	WordLength = 8

	DefaultAuthor = "MD. Naiem Islam Nahid"

	ConfigFile  = "treegen.json"
	SummaryFile = "generation_summary.json"
)

// Config holds the run parameters. Defaults reproduce the fixed
// 1000x100 sequential run.
type Config struct {
	BaseDir        string `json:"base_dir"`
	Folders        int    `json:"folders"`
	FilesPerFolder int    `json:"files_per_folder"`
	Workers        int    `json:"workers"`
	Author         string `json:"author"`
	Git            bool   `json:"git"`
}

func Default() Config {
	return Config{
		BaseDir:        DefaultBaseDir,
		Folders:        DefaultFolders,
		FilesPerFolder: DefaultFilesPerFolder,
		Workers:        DefaultWorkers,
		Author:         DefaultAuthor,
		Git:            true,
	}
}

// Load returns the defaults overlaid with the optional config file and
// TREEGEN_* environment variables. A missing or malformed file is not an
// error; the defaults stand.
func Load(path string) Config {
	cfg := Default()

	// fields absent from the file keep their defaults;
	// a missing or malformed file is ignored entirely
	util.ReadJSON(path, &cfg)

	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	godotenv.Load() // pick up a .env file if present

	if v := os.Getenv("TREEGEN_BASE_DIR"); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv("TREEGEN_FOLDERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Folders = n
		}
	}
	if v := os.Getenv("TREEGEN_FILES_PER_FOLDER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FilesPerFolder = n
		}
	}
	if v := os.Getenv("TREEGEN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TREEGEN_AUTHOR"); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("TREEGEN_GIT"); v != "" {
		cfg.Git = v == "true" || v == "1"
	}
}
