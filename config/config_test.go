package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConnectionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JIRA_DOMAIN", "https://example.atlassian.net/")
	t.Setenv("JIRA_EMAIL", "ops@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")
	t.Setenv("PROJECT_KEY", "")
	t.Setenv("LAUNCH_DATE_FIELD", "")
	t.Setenv("DAYS_LOOKAHEAD", "")
	t.Setenv("OUTPUT_CSV", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("PROJECT_KEY", "PROJ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.atlassian.net", cfg.JiraURL)
	assert.Equal(t, "ops@example.com", cfg.JiraEmail)
	assert.Equal(t, "token", cfg.JiraAPIToken)
	assert.Equal(t, "PROJ", cfg.ProjectKey)
	assert.Equal(t, DefaultLaunchDateField, cfg.LaunchDateField)
	assert.Equal(t, DefaultLookaheadDays, cfg.LookaheadDays)
	assert.Equal(t, DefaultOutputCSV, cfg.OutputCSV)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("PROJECT_KEY", "PROJ")
	t.Setenv("LAUNCH_DATE_FIELD", "customfield_20000")
	t.Setenv("DAYS_LOOKAHEAD", "30")
	t.Setenv("OUTPUT_CSV", "out.csv")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "customfield_20000", cfg.LaunchDateField)
	assert.Equal(t, 30, cfg.LookaheadDays)
	assert.Equal(t, "out.csv", cfg.OutputCSV)
}

func TestLoadConfig_InvalidLookaheadFallsBack(t *testing.T) {
	for _, v := range []string{"soon", "-3"} {
		setConnectionEnv(t)
		t.Setenv("PROJECT_KEY", "PROJ")
		t.Setenv("DAYS_LOOKAHEAD", v)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultLookaheadDays, cfg.LookaheadDays, "DAYS_LOOKAHEAD=%q", v)
	}
}

func TestLoadConfig_MissingProjectKey(t *testing.T) {
	setConnectionEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfig))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"PROJECT_KEY"}, cfgErr.Missing)
}

func TestLoadConfig_ReportsAllMissing(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("JIRA_DOMAIN", "")
	t.Setenv("JIRA_API_TOKEN", "")

	_, err := LoadConfig()

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"JIRA_DOMAIN", "JIRA_API_TOKEN", "PROJECT_KEY"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "JIRA_DOMAIN, JIRA_API_TOKEN, PROJECT_KEY")
}

func TestLoadConnectionConfig_DoesNotRequireProject(t *testing.T) {
	setConnectionEnv(t)

	cfg, err := LoadConnectionConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.ProjectKey)
}

func TestLoadConnectionConfig_MissingEmail(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("JIRA_EMAIL", "")

	_, err := LoadConnectionConfig()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"JIRA_EMAIL"}, cfgErr.Missing)
}
