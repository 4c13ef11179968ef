package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/olimci/followdiff/pkg/baseline"
	"github.com/olimci/followdiff/pkg/store/config"
	"github.com/olimci/followdiff/pkg/utils/fileutils"
	"github.com/olimci/followdiff/pkg/version"
)

const (
	dirName     = "followdiff"
	configFile  = "config.toml"
	dataDir     = "data"
	envStoreDir = "FOLLOWDIFF_STORE_DIR"
)

var (
	ErrAlreadyInstalled = errors.New("followdiff is already installed")
	ErrNotInstalled     = errors.New("followdiff is not installed")
)

// Store points to local store files.
type Store struct {
	Root string
}

func DefaultStore() (Store, error) {
	if customRoot := strings.TrimSpace(os.Getenv(envStoreDir)); customRoot != "" {
		absRoot, err := fileutils.AbsPath(customRoot)
		if err != nil {
			return Store{}, fmt.Errorf("resolve %s: %w", envStoreDir, err)
		}
		return Store{Root: absRoot}, nil
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, fmt.Errorf("resolve user config directory: %w", err)
	}

	return Store{Root: filepath.Join(cfgDir, dirName)}, nil
}

func (s Store) ConfigPath() string {
	return filepath.Join(s.Root, configFile)
}

// DataPath is the directory storage backends keep their files in.
func (s Store) DataPath() string {
	return filepath.Join(s.Root, dataDir)
}

func (s Store) IsInstalled() bool {
	if _, err := os.Stat(s.ConfigPath()); err != nil {
		return false
	}
	if info, err := os.Stat(s.DataPath()); err != nil || !info.IsDir() {
		return false
	}
	return true
}

func DefaultConfig() config.Config {
	return config.Config{
		Followdiff: config.Followdiff{
			Version: version.Version,
		},
		Storage: config.Storage{
			Backend: baseline.KindFile,
		},
		Options: config.Options{
			AutoBaseline: true,
			Links:        false,
		},
	}
}

// Install initializes store and fails if store already exists.
func (s Store) Install() error {
	if s.IsInstalled() {
		return ErrAlreadyInstalled
	}

	_, err := s.installMissing()
	return err
}

// EnsureInstalled initializes store if missing.
func (s Store) EnsureInstalled() error {
	_, err := s.installMissing()
	return err
}

// installMissing creates store directories and any missing store files.
func (s Store) installMissing() (bool, error) {
	if err := os.MkdirAll(s.DataPath(), 0o755); err != nil {
		return false, fmt.Errorf("create store directories: %w", err)
	}

	return ensureDefaultConfig(s.ConfigPath())
}

func (s Store) Uninstall() error {
	if !s.IsInstalled() {
		return ErrNotInstalled
	}

	return fileutils.RemovePath(s.Root)
}

func (s Store) LoadConfig() (config.Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(s.ConfigPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return config.Config{}, fmt.Errorf("stat %s: %w", s.ConfigPath(), err)
	}

	if _, err := toml.DecodeFile(s.ConfigPath(), &cfg); err != nil {
		return config.Config{}, fmt.Errorf("decode %s: %w", s.ConfigPath(), err)
	}

	if cfg.Followdiff.Version == "" {
		cfg.Followdiff.Version = version.Version
	}
	if err := version.EnsureCompatible(cfg.Followdiff.Version); err != nil {
		return config.Config{}, fmt.Errorf("unsupported config version %q: %w", cfg.Followdiff.Version, err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = baseline.KindFile
	}
	if !baseline.ValidKind(cfg.Storage.Backend) {
		return config.Config{}, fmt.Errorf("decode %s: unsupported storage backend %q", s.ConfigPath(), cfg.Storage.Backend)
	}

	return cfg, nil
}

func (s Store) SaveConfig(cfg config.Config) error {
	if cfg.Followdiff.Version == "" {
		cfg.Followdiff.Version = version.Version
	}
	return writeTOML(s.ConfigPath(), cfg)
}
