package emu

import (
	"os"
	"path/filepath"
	"sync"

	"xtdbg/emu/log"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

type Config struct {
	GDB GDBConfig `toml:"gdb"`
	QMP QMPConfig `toml:"qmp"`
	Log LogConfig `toml:"log"`
}

type GDBConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type QMPConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type LogConfig struct {
	Modules []string `toml:"modules"`
}

// DefaultConfig matches the network defaults of §6: GDB on 2159, QMP on
// 4444, both enabled.
func DefaultConfig() Config {
	return Config{
		GDB: GDBConfig{Enabled: true, Port: 2159},
		QMP: QMPConfig{Enabled: true, Port: 4444},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("xtdbg")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.FatalZ("failed to create config directory").String("dir", dir).Error("err", err).End()
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the xtdbg config
// directory, or returns the network defaults if no file is present.
func LoadConfigOrDefault() Config {
	return LoadConfigFileOrDefault(filepath.Join(ConfigDir, cfgFilename))
}

// LoadConfigFileOrDefault loads a specific config file, or returns the
// network defaults if it doesn't exist or fails to parse.
func LoadConfigFileOrDefault(path string) Config {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the xtdbg config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
