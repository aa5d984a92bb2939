package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "TASKBOARD"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyDSN         = "dsn"
	cfgKeyListen      = "listen"
	cfgKeyServerURL   = "server_url"
	cfgKeyLogLevel    = "log_level"
	cfgKeyJSONLMirror = "jsonl_mirror"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir,omitempty"`
	DSN         string `yaml:"dsn,omitempty"`
	Listen      string `yaml:"listen"`
	ServerURL   string `yaml:"server_url"`
	LogLevel    string `yaml:"log_level"`
	JSONLMirror bool   `yaml:"jsonl_mirror"`
}

func defaultConfig() configFile {
	return configFile{
		Backend:   types.BackendSQLite,
		Listen:    ":8080",
		ServerURL: "http://localhost:8080",
		LogLevel:  "info",
	}
}

const configHeader = "# taskboard configuration\n# backend: sqlite | postgres (postgres reads dsn)\n\n"

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. Values can be overridden with TASKBOARD_*
// environment variables.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	d := defaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, d.Backend)
	v.SetDefault(cfgKeyListen, d.Listen)
	v.SetDefault(cfgKeyServerURL, d.ServerURL)
	v.SetDefault(cfgKeyLogLevel, d.LogLevel)
	v.SetDefault(cfgKeyJSONLMirror, d.JSONLMirror)

	// data_dir is not bound here: TASKBOARD_DATA_DIR ranks below config.yaml
	// and is read by paths.ResolveDataDir.
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyDSN, cfgKeyListen, cfgKeyServerURL, cfgKeyLogLevel, cfgKeyJSONLMirror} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
