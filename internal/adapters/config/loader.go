// Package config provides the configuration loader for peek.
package config

import (
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"time"

	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvAssetAPIURL overrides assetApiUrl.
	EnvAssetAPIURL = "PEEK_ASSET_API_URL"
	// EnvAPITimeout overrides apiTimeout (milliseconds).
	EnvAPITimeout = "PEEK_API_TIMEOUT"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var knownKeys = map[string]struct{}{
	"assetMappingPath":        {},
	"assetApiUrl":             {},
	"apiTimeout":              {},
	"showRefreshNotification": {},
	"activityIdFile":          {},
	"refreshOnHoverThreshold": {},
	"autoRefreshInterval":     {},
	"maxWidth":                {},
	"maxHeight":               {},
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger

	fs     fs.FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger: logger,
		fs:     fs.NewOSFS(),
		getenv: os.Getenv,
	}
}

// WithEnv replaces the environment lookup (used for testing).
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// WithFileSystem replaces the filesystem (used for testing).
func (l *Loader) WithFileSystem(fsys fs.FileSystem) *Loader {
	l.fs = fsys
	return l
}

// Load reads the settings from path. A missing file yields the defaults.
// Environment overrides are applied last.
func (l *Loader) Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var file Peekfile
	found, err := l.readAndUnmarshalYAML(path, &file)
	if err != nil {
		return settings, zerr.With(err, "path", path)
	}
	if found {
		if err := apply(&settings, &file); err != nil {
			return settings, zerr.With(err, "path", path)
		}
	}

	if err := l.applyEnv(&settings); err != nil {
		return settings, err
	}

	return settings, nil
}

// readAndUnmarshalYAML reports found=false for a missing file.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Peekfile) (bool, error) {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if fs.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return false, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	l.warnUnknownKeys(configPath, data)

	return true, nil
}

// warnUnknownKeys reports top-level keys that no setting consumes, such as typos.
func (l *Loader) warnUnknownKeys(configPath string, data []byte) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		if _, ok := knownKeys[key]; !ok {
			l.Logger.Warn(fmt.Sprintf("ignoring unknown key %q in %s", key, configPath))
		}
	}
}

func apply(s *domain.Settings, f *Peekfile) error {
	if f.AssetMappingPath != nil {
		s.AssetMappingPath = *f.AssetMappingPath
	}
	if f.AssetAPIURL != nil {
		s.AssetAPIURL = *f.AssetAPIURL
	}
	if f.APITimeout != nil {
		if *f.APITimeout <= 0 {
			return zerr.With(domain.ErrConfigInvalid, "apiTimeout", *f.APITimeout)
		}
		d, err := millis("apiTimeout", *f.APITimeout)
		if err != nil {
			return err
		}
		s.APITimeout = d
	}
	if f.ShowRefreshNotification != nil {
		s.ShowRefreshNotification = *f.ShowRefreshNotification
	}
	if f.ActivityIDFile != nil && *f.ActivityIDFile != "" {
		s.ActivityIDFile = *f.ActivityIDFile
	}
	if f.RefreshOnHoverThreshold != nil {
		d, err := millis("refreshOnHoverThreshold", *f.RefreshOnHoverThreshold)
		if err != nil {
			return err
		}
		s.RefreshOnHoverThreshold = d
	}
	if f.AutoRefreshInterval != nil {
		if *f.AutoRefreshInterval < 0 {
			return zerr.With(domain.ErrConfigInvalid, "autoRefreshInterval", *f.AutoRefreshInterval)
		}
		d, err := millis("autoRefreshInterval", *f.AutoRefreshInterval)
		if err != nil {
			return err
		}
		s.AutoRefreshInterval = d
	}
	if f.MaxWidth != nil {
		s.MaxWidth = *f.MaxWidth
	}
	if f.MaxHeight != nil {
		s.MaxHeight = *f.MaxHeight
	}
	return nil
}

func (l *Loader) applyEnv(s *domain.Settings) error {
	if v := l.getenv(EnvAssetAPIURL); v != "" {
		s.AssetAPIURL = v
	}
	if v := l.getenv(EnvAPITimeout); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			return zerr.With(domain.ErrConfigInvalid, EnvAPITimeout, v)
		}
		d, err := millis(EnvAPITimeout, ms)
		if err != nil {
			return err
		}
		s.APITimeout = d
	}
	return nil
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millis converts a millisecond setting, rejecting values a time.Duration cannot hold.
func millis(key string, ms int64) (time.Duration, error) {
	if ms > maxMillis || ms < -maxMillis {
		return 0, zerr.With(domain.ErrConfigInvalid, key, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
