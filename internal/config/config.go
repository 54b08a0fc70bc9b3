package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	GoogleAds       GoogleAds       `mapstructure:",squash"`
	Engine          Engine          `mapstructure:",squash"`
	OptimizationRun OptimizationRun `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type GoogleAds struct {
	BaseURL        string `mapstructure:"gads_base_url"`
	Version        string `mapstructure:"gads_version"`
	URL            string `mapstructure:"-"`
	DeveloperToken string `mapstructure:"gads_developer_token"`
	LoginCustomer  string `mapstructure:"gads_login_customer_id"`
}

// Engine holds the tunable thresholds of the recommendation pipeline. The
// defaults mirror the documented policy; they are rarely overridden outside
// of tests.
type Engine struct {
	CooldownDays         int     `mapstructure:"engine_cooldown_days"`
	MinClicks7d          float64 `mapstructure:"engine_min_clicks_7d"`
	MinConversions30d    float64 `mapstructure:"engine_min_conversions_30d"`
	BudgetMinClicks7d    float64 `mapstructure:"engine_budget_min_clicks_7d"`
	StabilityCVCeiling   float64 `mapstructure:"engine_stability_cv_ceiling"`
	AbsoluteChangeCap    float64 `mapstructure:"engine_absolute_change_cap"`
	DefaultMinConfidence float64 `mapstructure:"engine_default_min_confidence"`
}

type OptimizationRun struct {
	CronSchedule string `mapstructure:"optimization_run_cron"`
	Enabled      bool   `mapstructure:"optimization_run_enabled"`
	Mode         string `mapstructure:"optimization_run_mode"`
	Approver     string `mapstructure:"optimization_run_approver"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/optimizer")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GADS_VERSION", "v17")
	viper.SetDefault("GADS_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GADS_LOGIN_CUSTOMER_ID", "")

	viper.SetDefault("ENGINE_COOLDOWN_DAYS", 7)
	viper.SetDefault("ENGINE_MIN_CLICKS_7D", 20.0)
	viper.SetDefault("ENGINE_MIN_CONVERSIONS_30D", 15.0)
	viper.SetDefault("ENGINE_BUDGET_MIN_CLICKS_7D", 30.0)
	viper.SetDefault("ENGINE_STABILITY_CV_CEILING", 0.6)
	viper.SetDefault("ENGINE_ABSOLUTE_CHANGE_CAP", 0.20)
	viper.SetDefault("ENGINE_DEFAULT_MIN_CONFIDENCE", 0.5)

	viper.SetDefault("OPTIMIZATION_RUN_CRON", "0 6 * * *") // Daily after the warehouse sync finishes
	viper.SetDefault("OPTIMIZATION_RUN_ENABLED", false)
	viper.SetDefault("OPTIMIZATION_RUN_MODE", "dry_run")
	viper.SetDefault("OPTIMIZATION_RUN_APPROVER", "scheduler")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.GoogleAds.URL = fmt.Sprintf("%s/%s", config.GoogleAds.BaseURL, config.GoogleAds.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not determine the current directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Loaded .env from:", location)
			return
		}
	}

	logrus.Warn("No .env file found in any known location")
}
