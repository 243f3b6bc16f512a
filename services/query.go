package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DateLayout はJQLとCSVで使う日付形式です
const DateLayout = "2006-01-02"

// ErrUnsafeQueryToken はJQLにそのまま埋め込めない値を表します
var ErrUnsafeQueryToken = errors.New("JQLに埋め込めない値です")

var (
	projectKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	fieldIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_.\[\]-]+$`)
)

// LaunchQuery はリリース日の範囲で絞り込む検索条件です
type LaunchQuery struct {
	JQL  string
	From string
	To   string
}

// BuildLaunchQuery は今日から lookaheadDays 日後までのリリース予定を
// リリース日の昇順で取得するJQLを組み立てます。
//
// プロジェクトキーとフィールドIDは文字列として直接埋め込むため、
// 英数字などの単純なトークン以外はエラーにします。
func BuildLaunchQuery(projectKey, fieldID string, now time.Time, lookaheadDays int) (LaunchQuery, error) {
	if !projectKeyPattern.MatchString(projectKey) {
		return LaunchQuery{}, fmt.Errorf("%w: プロジェクトキー %q", ErrUnsafeQueryToken, projectKey)
	}
	if !fieldIDPattern.MatchString(fieldID) {
		return LaunchQuery{}, fmt.Errorf("%w: フィールドID %q", ErrUnsafeQueryToken, fieldID)
	}
	if lookaheadDays < 0 {
		return LaunchQuery{}, fmt.Errorf("先読み日数が負の値です: %d", lookaheadDays)
	}

	today := now.UTC()
	from := today.Format(DateLayout)
	to := today.AddDate(0, 0, lookaheadDays).Format(DateLayout)

	jql := fmt.Sprintf(`project = %s AND %s >= "%s" AND %s <= "%s" ORDER BY %s ASC`,
		projectKey, fieldID, from, fieldID, to, fieldID)

	return LaunchQuery{JQL: jql, From: from, To: to}, nil
}
