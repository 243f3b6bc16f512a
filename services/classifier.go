package services

import (
	"fmt"
	"strings"
	"time"

	"launchinsight/api"
	"launchinsight/models"
)

// 直前とみなす日数
const atRiskWindowDays = 7

// 期限が近くてもリスクなしとするステータス (小文字)
var readyStatuses = map[string]bool{
	"ready":    true,
	"released": true,
}

// Classifier はイシューのリリース日とステータスからリスクを判定します
type Classifier struct {
	launchField string
	now         func() time.Time
}

// NewClassifier は新しい分類器を作成します。now が nil の場合は time.Now を使います
func NewClassifier(launchField string, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{
		launchField: launchField,
		now:         now,
	}
}

// Classify はイシューごとに1件の Insight を入力と同じ順序で返します
func (c *Classifier) Classify(issues []models.JiraIssue) ([]models.Insight, error) {
	today := truncateToDate(c.now())
	insights := make([]models.Insight, 0, len(issues))

	for _, issue := range issues {
		launchDate, err := c.launchDate(issue)
		if err != nil {
			return nil, err
		}

		status := issue.Fields.StatusName()
		statusName := ""
		if status != nil {
			statusName = *status
		}

		insights = append(insights, models.Insight{
			Project:    issue.Fields.ProjectName(),
			Key:        issue.Key,
			Summary:    issue.Fields.Summary,
			LaunchDate: launchDate,
			Status:     status,
			Risk:       ClassifyRisk(launchDate, statusName, today),
		})
	}

	return insights, nil
}

// launchDate はリリース日フィールドの日付部分 ("T" より前) を取り出します
func (c *Classifier) launchDate(issue models.JiraIssue) (*time.Time, error) {
	raw, ok, err := issue.Fields.StringField(c.launchField)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", api.ErrParse, issue.Key, err)
	}
	if !ok {
		return nil, nil
	}

	datePart, _, _ := strings.Cut(raw, "T")
	date, err := time.Parse(DateLayout, datePart)
	if err != nil {
		return nil, fmt.Errorf("%w: %s のリリース日 '%s': %v", api.ErrParse, issue.Key, raw, err)
	}
	return &date, nil
}

// ClassifyRisk はリリース日とステータスからリスクを判定します。
// 判定順: 日付なし→ON_TRACK, 過去→DELAYED, 7日以内かつ未準備→AT_RISK, それ以外→ON_TRACK
// ステータスが無い場合は空文字を渡します (未準備扱い)。
func ClassifyRisk(launchDate *time.Time, status string, now time.Time) models.Risk {
	if launchDate == nil {
		return models.RiskOnTrack
	}

	today := truncateToDate(now)
	launch := truncateToDate(*launchDate)

	if launch.Before(today) {
		return models.RiskDelayed
	}

	days := int(launch.Sub(today).Hours() / 24)
	if days <= atRiskWindowDays && !readyStatuses[strings.ToLower(status)] {
		return models.RiskAtRisk
	}

	return models.RiskOnTrack
}

// truncateToDate はUTCの日付 (00:00) に切り捨てます
func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
