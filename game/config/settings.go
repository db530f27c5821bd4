package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/save"
)

// EnvPrefix prefixes every environment override, as in SANANDREAS_SEED.
const EnvPrefix = "SANANDREAS"

// Settings is the process configuration.
type Settings struct {
	SavePath    string         `mapstructure:"save_path" json:"save_path"`
	Scenario    string         `mapstructure:"scenario" json:"scenario"`
	ScenarioDir string         `mapstructure:"scenario_dir" json:"scenario_dir"`
	SessionsDir string         `mapstructure:"sessions_dir" json:"sessions_dir"`
	Seed        int64          `mapstructure:"seed" json:"seed"`
	Log         LogSettings    `mapstructure:"log" json:"log"`
	Server      ServerSettings `mapstructure:"server" json:"server"`
	Rules       engine.Rules   `mapstructure:"rules" json:"rules"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-" json:"config_file,omitempty"`
}

type LogSettings struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

type ServerSettings struct {
	Addr  string `mapstructure:"addr" json:"addr"`
	Ngrok bool   `mapstructure:"ngrok" json:"ngrok"`
}

// LoadSettings reads defaults, then the config file, then environment
// variables. An empty file searches sanandreas.yaml in the working
// directory and in $HOME/.config/sanandreas; not finding one is fine.
func LoadSettings(file string) (*Settings, error) {
	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("sanandreas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sanandreas")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	s.ConfigFile = v.ConfigFileUsed()
	if err := engine.ValidateRules(s.Rules); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) error {
	v.SetDefault("save_path", save.DefaultPath)
	v.SetDefault("scenario", DefaultScenario)
	v.SetDefault("scenario_dir", "")
	v.SetDefault("sessions_dir", "sessions")
	v.SetDefault("seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "sanandreas.log")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.ngrok", false)

	// Every rule gets its own key so environment overrides reach it.
	data, err := json.Marshal(engine.DefaultRules())
	if err != nil {
		return err
	}
	var rules map[string]any
	if err := json.Unmarshal(data, &rules); err != nil {
		return err
	}
	for k, val := range rules {
		v.SetDefault("rules."+k, val)
	}
	return nil
}
