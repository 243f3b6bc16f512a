package services

import (
	"fmt"
	"time"

	"launchinsight/config"
	"launchinsight/models"
	"launchinsight/utils"
)

// SearchMaxResults は1回の検索で取得する最大件数です (ページングなし)
const SearchMaxResults = 100

// IssueSearcher はJQL検索を行うクライアントです
type IssueSearcher interface {
	SearchIssues(jql string, fields []string, maxResults int) ([]models.JiraIssue, error)
}

// LaunchReportService はリリース予定の取得からCSV出力までを処理します
type LaunchReportService struct {
	config   config.Config
	searcher IssueSearcher
	writer   *ReportWriter
	now      func() time.Time
}

// NewLaunchReportService は新しいレポートサービスを作成します
func NewLaunchReportService(cfg config.Config, searcher IssueSearcher, writer *ReportWriter) *LaunchReportService {
	return &LaunchReportService{
		config:   cfg,
		searcher: searcher,
		writer:   writer,
		now:      time.Now,
	}
}

// Run は検索 → 分類 → CSV書き込みを行い、書き込んだ行数を返します。
// 検索に失敗した場合はCSVファイルに触れません。
func (s *LaunchReportService) Run() (int, error) {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "リリースインサイト作成")

	now := s.now()
	query, err := BuildLaunchQuery(s.config.ProjectKey, s.config.LaunchDateField, now, s.config.LookaheadDays)
	if err != nil {
		return 0, fmt.Errorf("JQL作成エラー: %w", err)
	}

	utils.LogInfo("リリース予定を検索します: プロジェクト=%s, 期間=%s〜%s", s.config.ProjectKey, query.From, query.To)

	fields := []string{"summary", "status", s.config.LaunchDateField, "project"}
	issues, err := s.searcher.SearchIssues(query.JQL, fields, SearchMaxResults)
	if err != nil {
		return 0, fmt.Errorf("イシュー検索エラー: %w", err)
	}

	utils.LogInfo("イシューを取得しました: %d 件", len(issues))
	if len(issues) == SearchMaxResults {
		utils.LogWarn("取得件数が上限 (%d 件) に達しました。以降の結果は含まれません", SearchMaxResults)
	}

	insights, err := NewClassifier(s.config.LaunchDateField, func() time.Time { return now }).Classify(issues)
	if err != nil {
		return 0, fmt.Errorf("イシュー分類エラー: %w", err)
	}
	logRiskSummary(insights)

	if err := s.writer.WriteInsights(insights); err != nil {
		return 0, err
	}

	return len(insights), nil
}

func logRiskSummary(insights []models.Insight) {
	counts := make(map[models.Risk]int)
	for _, insight := range insights {
		counts[insight.Risk]++
	}

	utils.Log.WithFields(map[string]interface{}{
		"on_track": counts[models.RiskOnTrack],
		"at_risk":  counts[models.RiskAtRisk],
		"delayed":  counts[models.RiskDelayed],
	}).Info("リスク判定結果")
}
