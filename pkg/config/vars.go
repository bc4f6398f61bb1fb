package config

import (
	"path/filepath"
)

var (
	// Version is the library version. CLI builds override it with
	// build flags.
	Version = "dev"
	// AppName is used in generating file system paths.
	AppName = "gnoccur"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnoccur by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files, including fetched
// download archives and the download registry.
// Returns ~/.cache/gnoccur by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DownloadDir returns the directory where fetched archives are stored.
// Returns ~/.cache/gnoccur/downloads by default.
func DownloadDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "downloads")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnoccur/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnoccur/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RegistryFilePath returns the full path to the download registry database.
// Returns ~/.cache/gnoccur/downloads.db by default.
func RegistryFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "downloads.db")
}
