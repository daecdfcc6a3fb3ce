package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	APIBaseURL      string        `yaml:"api_base_url"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"` // how long product lists are served from cache
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// Environment variables API_BASE_URL and JWT_SECRET override file values,
// so containerized deployments don't need a private.yaml at all.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	if _, err := os.Stat(path.Join(configFolder, "private.yaml")); err == nil {
		mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		public.APIBaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		private.JwtKey = v
	}

	return &Config{public, private}
}
