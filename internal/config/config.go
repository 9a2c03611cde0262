package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/ffmpeg"
)

// Settings are the user preferences read from the config file, the
// environment and the command line.
type Settings struct {
	// FFmpegPath locates the transcoding binary.
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	Verbose    bool   `mapstructure:"verbose"`
	LogFile    string `mapstructure:"log_file"`
	// SampleRate is assumed for pitch-keeping speed changes when the input
	// cannot be probed.
	SampleRate int `mapstructure:"sample_rate"`
	// Probe enables ffprobe lookups of the input's sample rate.
	Probe bool `mapstructure:"probe"`
	// NoClobber refuses to run when the output file already exists.
	NoClobber bool `mapstructure:"no_clobber"`
}

const (
	// EnvPrefix prefixes environment overrides, e.g. FFMPEG_TOOLS_FFMPEG_PATH.
	EnvPrefix = "FFMPEG_TOOLS"

	configDirName  = ".ffmpeg-tools"
	configBaseName = "config"
)

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ffmpeg_path", ffmpeg.DefaultBinary)
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
	v.SetDefault("sample_rate", compiler.DefaultSampleRate)
	v.SetDefault("probe", true)
	v.SetDefault("no_clobber", false)
}

// Load reads file, or $HOME/.ffmpeg-tools/config.{yaml,toml,json} when file
// is empty, applies environment overrides and decodes the result. A missing
// default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper, file string) (Settings, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configBaseName)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, configDirName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Settings{}, errors.Wrap(err, "read config")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode config")
	}
	if s.FFmpegPath == "" {
		s.FFmpegPath = ffmpeg.DefaultBinary
	}
	if s.SampleRate <= 0 {
		s.SampleRate = compiler.DefaultSampleRate
	}
	return s, nil
}
