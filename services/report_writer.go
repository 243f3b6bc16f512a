package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"launchinsight/models"
	"launchinsight/utils"
)

// 値がないセルに出力する文字列
const placeholder = "-"

// ReportHeaders はレポートCSVの列です
var ReportHeaders = []string{"Project", "Key", "Summary", "Launch Date", "Status", "Risk"}

// ReportWriter はリリースインサイトをCSVファイルに書き出します
type ReportWriter struct {
	path string
}

// NewReportWriter は新しいレポートライターを作成します
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path は出力先のファイルパスを返します
func (w *ReportWriter) Path() string {
	return w.path
}

// WriteInsights はCSVファイルを作成 (既存なら上書き) して書き込みます
func (w *ReportWriter) WriteInsights(insights []models.Insight) (err error) {
	utils.LogInfo("レポートCSV '%s' を作成します", w.path)

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("CSVファイル作成エラー: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("CSVファイルクローズエラー: %w", cerr)
		}
	}()

	if err := Write(file, insights); err != nil {
		return err
	}

	utils.LogInfo("CSV書き込み完了: %d 行", len(insights))
	return nil
}

// Write はヘッダーと Insight ごとの行を out に書き込みます
func Write(out io.Writer, insights []models.Insight) error {
	writer := csv.NewWriter(out)
	writer.UseCRLF = true
	if err := writer.Write(ReportHeaders); err != nil {
		return fmt.Errorf("ヘッダー書き込みエラー: %w", err)
	}

	for _, insight := range insights {
		if err := writer.Write(insightRow(insight)); err != nil {
			return fmt.Errorf("行書き込みエラー: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV書き込み完了エラー: %w", err)
	}
	return nil
}

func insightRow(insight models.Insight) []string {
	launchDate := placeholder
	if insight.LaunchDate != nil {
		launchDate = insight.LaunchDate.Format(DateLayout)
	}

	return []string{
		orPlaceholder(insight.Project),
		insight.Key,
		orPlaceholder(insight.Summary),
		launchDate,
		orPlaceholder(insight.Status),
		insight.Risk.String(),
	}
}

func orPlaceholder(s *string) string {
	if s == nil {
		return placeholder
	}
	return *s
}
