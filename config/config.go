package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"launchinsight/utils"
)

// ErrMissingConfig は必須の環境変数が設定されていないことを表します
var ErrMissingConfig = errors.New("必須の設定がありません")

// ConfigError は不足している環境変数の一覧を保持します
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingConfig.Error(), strings.Join(e.Missing, ", "))
}

// Unwrap は errors.Is(err, ErrMissingConfig) を成立させます
func (e *ConfigError) Unwrap() error {
	return ErrMissingConfig
}

// デフォルト値
const (
	DefaultLaunchDateField = "customfield_10040"
	DefaultLookaheadDays   = 90
	DefaultOutputCSV       = "feature_launch_insights.csv"
	DefaultLogLevel        = "info"
)

// Config はツール全体の設定を保持します
type Config struct {
	// JIRA API設定
	JiraURL      string
	JiraEmail    string
	JiraAPIToken string
	ProjectKey   string

	// レポート設定
	LaunchDateField string
	LookaheadDays   int
	OutputCSV       string

	LogLevel string
}

// LoadConfig はレポート生成に必要な設定を環境変数から読み込みます
func LoadConfig() (Config, error) {
	cfg := load()

	if err := cfg.validate(true); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConnectionConfig は接続情報のみを必須として設定を読み込みます
// (フィールド一覧・認証確認用)
func LoadConnectionConfig() (Config, error) {
	cfg := load()

	if err := cfg.validate(false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load() Config {
	// .envファイルがあれば読み込む
	_ = godotenv.Load()

	return Config{
		JiraURL:         strings.TrimRight(os.Getenv("JIRA_DOMAIN"), "/"),
		JiraEmail:       os.Getenv("JIRA_EMAIL"),
		JiraAPIToken:    os.Getenv("JIRA_API_TOKEN"),
		ProjectKey:      os.Getenv("PROJECT_KEY"),
		LaunchDateField: getEnvWithDefault("LAUNCH_DATE_FIELD", DefaultLaunchDateField),
		LookaheadDays:   getEnvAsIntWithDefault("DAYS_LOOKAHEAD", DefaultLookaheadDays),
		OutputCSV:       getEnvWithDefault("OUTPUT_CSV", DefaultOutputCSV),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", DefaultLogLevel),
	}
}

func (c Config) validate(requireProject bool) error {
	var missing []string
	if c.JiraURL == "" {
		missing = append(missing, "JIRA_DOMAIN")
	}
	if c.JiraEmail == "" {
		missing = append(missing, "JIRA_EMAIL")
	}
	if c.JiraAPIToken == "" {
		missing = append(missing, "JIRA_API_TOKEN")
	}
	if requireProject && c.ProjectKey == "" {
		missing = append(missing, "PROJECT_KEY")
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// デフォルト値付きで環境変数を取得
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// デフォルト値付きで環境変数を0以上の整数として取得
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		utils.LogWarn("%s の値 '%s' が不正なためデフォルト値 %d を使用します", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
