package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML config file. Durations are kept as
// strings and parsed with the same rules as their env counterparts.
type fileConfig struct {
	ListenPort      string `yaml:"listen_port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	RequestTimeout  string `yaml:"request_timeout"`

	LogLevel  string `yaml:"log_level"`
	PrettyLog *bool  `yaml:"pretty_log"`

	DatabasePath string `yaml:"database_path"`

	DockerSocket   string `yaml:"docker_socket"`
	AdapterTimeout string `yaml:"adapter_timeout"`
	SyncInterval   string `yaml:"sync_interval"`

	CacheTTL string `yaml:"cache_ttl"`

	Redis struct {
		Addr     string `yaml:"addr"`
		User     string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// loadFile reads the YAML config file at path. An empty path returns an
// empty fileConfig so env vars and defaults apply alone. A path that is
// set but unreadable or malformed is fatal.
func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: cannot read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(fmt.Sprintf("❌ FATAL: cannot parse config file %s: %v", path, err))
	}
	return fc
}
