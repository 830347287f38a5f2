package config

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/warmstack/primer/internal/pkg/utils"
)

// Config holds all configuration for our program, parsed from various sources
// The `mapstructure` tags are used to map the fields to the viper configuration
type Config struct {
	Job     string `mapstructure:"job"`
	JobPath string

	// Target API
	BaseURL       string `mapstructure:"base-url"`
	StartResource string `mapstructure:"resource"`
	MediaType     string `mapstructure:"media-type"`

	// Credentials
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api-key"`

	// Admission and visited state
	FilterFile     string `mapstructure:"filter-file"`
	VisitedFile    string `mapstructure:"visited-file"`
	VisitedBackend string `mapstructure:"visited-backend"`

	// Frontier
	PersistentQueue bool `mapstructure:"persistent-queue"`

	// HTTP
	UserAgent   string        `mapstructure:"user-agent"`
	MaxRetry    int           `mapstructure:"max-retry"`
	RetryDelay  time.Duration `mapstructure:"retry-delay"`
	HTTPTimeout time.Duration `mapstructure:"http-timeout"`

	// The upstream API stripped some hypermedia links from terminology
	// package responses, this re-adds the /codelists children for them.
	CTCodelists bool `mapstructure:"ct-codelists"`

	// Prometheus and metrics
	Prometheus       bool   `mapstructure:"prometheus"`
	PrometheusPrefix string `mapstructure:"prometheus-prefix"`
	APIPort          int    `mapstructure:"api-port"`

	// Logging
	NoStdoutLogging  bool   `mapstructure:"no-stdout-log"`
	StdoutLogLevel   string `mapstructure:"log-level"`
	NoFileLogging    bool   `mapstructure:"no-log-file"`
	LogFileOutputDir string `mapstructure:"log-file-output-dir"`
	LogFilePrefix    string `mapstructure:"log-file-prefix"`
	LogFileLevel     string `mapstructure:"log-file-level"`
	LogFileRotation  string `mapstructure:"log-file-rotation"`
}

var (
	config *Config
	once   sync.Once
)

// InitConfig initializes the configuration
// Flags -> Env -> Config file
// Latest has precedence over the rest
func InitConfig() error {
	var err error
	once.Do(func() {
		config = &Config{}

		// Check if a config file is provided via flag
		if configFile := viper.GetString("config-file"); configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				err = homeErr
				return
			}

			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName("primer-config")
		}

		viper.SetEnvPrefix("PRIMER")
		replacer := strings.NewReplacer("-", "_", ".", "_")
		viper.SetEnvKeyReplacer(replacer)
		viper.AutomaticEnv()

		if err = viper.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
		// A missing config file is fine, everything has a flag default
		err = nil

		// Unmarshal the config into the Config struct
		err = viper.Unmarshal(config)
	})
	return err
}

// BindFlags binds the flags to the viper configuration
// This is needed because viper doesn't support same flag name accross multiple commands
// Details here: https://github.com/spf13/viper/issues/375#issuecomment-794668149
func BindFlags(flagSet *pflag.FlagSet) {
	flagSet.VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

// Get returns the config struct
func Get() *Config {
	return config
}

// GenerateRunConfig derives the per-run settings that depend on other values:
// job name and path, default visited file location and the User-Agent.
func GenerateRunConfig() error {
	// If the job name isn't specified, we generate a random name
	if config.Job == "" {
		UUID, err := uuid.NewUUID()
		if err != nil {
			return err
		}

		config.Job = UUID.String()
	}

	config.JobPath = path.Join("jobs", config.Job)

	if config.VisitedFile == "" {
		config.VisitedFile = path.Join(config.JobPath, "visited.log")
	}

	if config.LogFileOutputDir == "" {
		config.LogFileOutputDir = path.Join(config.JobPath, "logs")
	}

	if config.UserAgent == "" {
		version := utils.GetVersion()

		// If Version is a commit hash, we only take the first 7 characters
		if len(version.Version) >= 40 {
			version.Version = version.Version[:7]
		}

		config.UserAgent = "primer/" + version.Version
	}

	if config.BaseURL == "" {
		return ErrNoBaseURL
	}

	if config.StartResource == "" {
		return ErrNoStartResource
	}

	return nil
}
