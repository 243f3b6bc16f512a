package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"launchinsight/config"
	"launchinsight/models"
	"launchinsight/utils"
)

// ErrParse はJIRAのレスポンスを解釈できなかったことを表します
var ErrParse = errors.New("レスポンス解析エラー")

// APIError はJIRAが200以外を返したときのエラーです
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("JIRA API エラー (status %d): %s", e.StatusCode, e.Body)
}

// JiraClient はJIRA APIとのやり取りを処理します
type JiraClient struct {
	config config.Config
	client *http.Client
}

// NewJiraClient は新しいJIRAクライアントを作成します
func NewJiraClient(cfg config.Config) *JiraClient {
	return &JiraClient{
		config: cfg,
		client: &http.Client{},
	}
}

type searchResponse struct {
	Issues []models.JiraIssue `json:"issues"`
}

// SearchIssues はJQLでイシューを検索します。
// 1ページ目 (最大 maxResults 件) のみを返し、ページングは行いません。
func (j *JiraClient) SearchIssues(jql string, fields []string, maxResults int) ([]models.JiraIssue, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", strings.Join(fields, ","))
	params.Set("maxResults", strconv.Itoa(maxResults))

	endpoint := fmt.Sprintf("%s/rest/api/2/search?%s", j.config.JiraURL, params.Encode())
	utils.LogDebug("JQL: %s", jql)

	var result searchResponse
	if err := j.getJSON(endpoint, &result); err != nil {
		return nil, err
	}

	return result.Issues, nil
}

// ListFields はJIRAに定義されている全フィールドを返します
func (j *JiraClient) ListFields() ([]models.FieldDescriptor, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/field", j.config.JiraURL)

	var fields []models.FieldDescriptor
	if err := j.getJSON(endpoint, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// CheckAuth はJIRA認証をチェックします
func (j *JiraClient) CheckAuth() error {
	endpoint := fmt.Sprintf("%s/rest/api/2/myself", j.config.JiraURL)

	var myself struct {
		DisplayName string `json:"displayName"`
	}
	if err := j.getJSON(endpoint, &myself); err != nil {
		return err
	}

	utils.LogDebug("認証ユーザー: %s", myself.DisplayName)
	return nil
}

// getJSON は認証付きGETを送り、200のレスポンスを out にデコードします
func (j *JiraClient) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("リクエスト作成エラー: %w", err)
	}

	req.SetBasicAuth(j.config.JiraEmail, j.config.JiraAPIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return fmt.Errorf("リクエスト送信エラー: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンス読み込みエラー: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	return nil
}
