package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pngstash/util"
)

/*
 * Configuration of default embedding behavior. Flags on the command
 * line always win over these values.
 */
type EmbedConfig struct {
	Compress bool `yaml:"compress"`                // compress payloads by default
	Backup   bool `yaml:"backup_before_overwrite"` // keep a .bak when rewriting in place
}

/*
 * Full configuration of the tool. Loaded from the user's home folder;
 * a missing file just means defaults.
 */
type FullConfig struct {
	Logger util.LoggerInfo `yaml:"logger_config"`
	Embed  EmbedConfig     `yaml:"embed_config"`
}

func DefaultConfig() *FullConfig {
	return &FullConfig{
		Logger: util.LoggerInfo{
			IsColored: true,
			Mode:      util.Error | util.Warning | util.Info,
		},
		Embed: EmbedConfig{
			Compress: false,
			Backup:   true,
		},
	}
}

// ConfigPath returns ~/.pngstash/config.yaml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pngstash", "config.yaml"), nil
}

func LoadConfig(filename string) (*FullConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var conf FullConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig(filename string, c *FullConfig) error {
	data, err := yaml.Marshal(*c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}
