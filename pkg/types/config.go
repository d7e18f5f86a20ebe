// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ScanConfig selects which project directories a scan reads.
type ScanConfig struct {
	// ProjectsDir is the absolute directory that contains the projects.
	ProjectsDir string `json:"projects_dir" yaml:"projects_dir"`

	// Projects lists project directory names in scan order. When empty the
	// CLI falls back to auto-discovery of directories with a strategy/ folder.
	Projects []string `json:"projects" yaml:"projects"`

	// Discovered records whether Projects came from auto-discovery.
	Discovered bool `json:"discovered" yaml:"discovered"`
}

// ServerConfig holds settings for the HTTP dashboard.
type ServerConfig struct {
	ScanConfig `yaml:",inline"`

	// Port is the TCP port the dashboard listens on (default 8080).
	Port int `json:"port" yaml:"port"`

	// CacheTTL is how long a scan result is served before rescanning (default 5s).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// Watch enables filesystem notifications that drop the cached scan as
	// soon as a strategy file changes.
	Watch bool `json:"watch" yaml:"watch"`

	// ReadTimeout and WriteTimeout bound a single HTTP exchange.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}
