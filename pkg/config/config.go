// Package config loads client settings from .ncadmin.yaml and NCADMIN_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries everything the client needs to reach the server and shape
// its views.
type Config struct {
	// ServerURL is the base address of the credit-note API.
	ServerURL string
	// Timeout bounds every request.
	Timeout time.Duration
	// PageSize is the default list page size.
	PageSize int
	// ReportFile is the default path for downloaded reports.
	ReportFile string
	// CredentialPath overrides where the bearer token is stored.
	CredentialPath string
	// StatementPartial lets the statement view show partial data with a
	// warning instead of failing when a reversal sub-request errors.
	StatementPartial bool
}

// Load reads configuration from the working directory, the home directory,
// and the environment. Missing config files are fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("server", "http://localhost:8000")
	v.SetDefault("timeout", "30s")
	v.SetDefault("page_size", 10)
	v.SetDefault("report_file", "relatorio_salc.pdf")
	v.SetDefault("statement_partial", false)

	v.SetConfigName(".ncadmin")
	v.SetEnvPrefix("NCADMIN")
	v.AutomaticEnv()

	if override := os.Getenv("NCADMIN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", v.GetString("timeout"), err)
	}
	pageSize := v.GetInt("page_size")
	if pageSize < 1 {
		pageSize = 10
	}

	return &Config{
		ServerURL:        v.GetString("server"),
		Timeout:          timeout,
		PageSize:         pageSize,
		ReportFile:       v.GetString("report_file"),
		CredentialPath:   v.GetString("credential_path"),
		StatementPartial: v.GetBool("statement_partial"),
	}, nil
}
