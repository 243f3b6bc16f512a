package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLaunchQuery(t *testing.T) {
	query, err := BuildLaunchQuery("PROJ", "customfield_10040", fixedNow, 90)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-05", query.From)
	assert.Equal(t, "2025-04-05", query.To)
	assert.Equal(t,
		`project = PROJ AND customfield_10040 >= "2025-01-05" AND customfield_10040 <= "2025-04-05" ORDER BY customfield_10040 ASC`,
		query.JQL)
}

func TestBuildLaunchQuery_UsesUTC(t *testing.T) {
	// ローカル時刻では翌日でもUTCの日付を使う
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 1, 6, 1, 0, 0, 0, tokyo)

	query, err := BuildLaunchQuery("PROJ", "customfield_10040", now, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", query.From)
	assert.Equal(t, "2025-01-05", query.To)
}

func TestBuildLaunchQuery_RejectsUnsafeTokens(t *testing.T) {
	tests := []struct {
		project string
		field   string
	}{
		{"PROJ OR project = OTHER", "customfield_10040"},
		{"", "customfield_10040"},
		{"PROJ", `customfield_10040 = "x"`},
		{"PROJ", ""},
	}

	for _, tt := range tests {
		_, err := BuildLaunchQuery(tt.project, tt.field, fixedNow, 90)
		assert.True(t, errors.Is(err, ErrUnsafeQueryToken), "project=%q field=%q", tt.project, tt.field)
	}
}

func TestBuildLaunchQuery_AcceptsBracketFieldSyntax(t *testing.T) {
	query, err := BuildLaunchQuery("PROJ", "cf[10040]", fixedNow, 7)
	require.NoError(t, err)
	assert.Contains(t, query.JQL, `cf[10040] <= "2025-01-12"`)
}

func TestBuildLaunchQuery_NegativeLookahead(t *testing.T) {
	_, err := BuildLaunchQuery("PROJ", "customfield_10040", fixedNow, -1)
	assert.Error(t, err)
}
