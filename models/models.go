package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// JiraIssue は検索APIが返すイシュー1件を表します
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraNamed は status や project のような name を持つオブジェクトです
type JiraNamed struct {
	Name *string `json:"name"`
}

// JiraFields はイシューのフィールドを表します。
// summary/status/project はキーが無い (または null) 場合 nil です。
// それ以外のフィールドは Raw から ID で参照します。
type JiraFields struct {
	Summary *string
	Status  *JiraNamed
	Project *JiraNamed

	Raw map[string]json.RawMessage
}

// UnmarshalJSON は既知のフィールドを取り出し、全体を Raw に保持します
func (f *JiraFields) UnmarshalJSON(data []byte) error {
	var known struct {
		Summary *string    `json:"summary"`
		Status  *JiraNamed `json:"status"`
		Project *JiraNamed `json:"project"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = JiraFields{
		Summary: known.Summary,
		Status:  known.Status,
		Project: known.Project,
		Raw:     raw,
	}
	return nil
}

// StatusName はステータス名を返します (無ければ nil)
func (f JiraFields) StatusName() *string {
	if f.Status == nil {
		return nil
	}
	return f.Status.Name
}

// ProjectName はプロジェクト名を返します (無ければ nil)
func (f JiraFields) ProjectName() *string {
	if f.Project == nil {
		return nil
	}
	return f.Project.Name
}

// StringField は指定IDのフィールドを文字列として返します。
// キーが無い・null・空文字の場合は ok=false です。
func (f JiraFields) StringField(id string) (value string, ok bool, err error) {
	msg, found := f.Raw[id]
	if !found || len(msg) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return "", false, nil
	}

	if err := json.Unmarshal(msg, &value); err != nil {
		return "", false, fmt.Errorf("フィールド %s が文字列ではありません: %w", id, err)
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// FieldDescriptor はフィールドメタデータAPIの1件です
type FieldDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Risk はリリース予定のリスク分類です
type Risk int

const (
	RiskOnTrack Risk = iota
	RiskAtRisk
	RiskDelayed
)

func (r Risk) String() string {
	switch r {
	case RiskAtRisk:
		return "AT_RISK"
	case RiskDelayed:
		return "DELAYED"
	default:
		return "ON_TRACK"
	}
}

// Insight はイシュー1件から導出したレポート行です。
// nil は「値なし」を表し、"-" への置き換えはCSV出力時に行います。
// 空文字はJIRAが返した値としてそのまま出力します。
type Insight struct {
	Project    *string
	Key        string
	Summary    *string
	LaunchDate *time.Time
	Status     *string
	Risk       Risk
}
