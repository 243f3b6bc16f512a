package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"launchinsight/api"
	"launchinsight/config"
	"launchinsight/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run は認証を確認し、プロセスの終了コードを返します
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("auth_check", flag.ContinueOnError)
	help := flags.Bool("help", false, "ヘルプを表示する")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(stdout)
		return 0
	}

	// 設定の読み込み (プロジェクトキーは不要)
	cfg, err := config.LoadConnectionConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		return 1
	}
	utils.SetLevel(cfg.LogLevel)

	utils.LogInfo("JIRA APIの認証を確認しています... (%s)", cfg.JiraURL)
	if err := api.NewJiraClient(cfg).CheckAuth(); err != nil {
		fmt.Fprintln(stdout, color.New(color.FgRed).Sprintf("❌ JIRA認証エラー: %v", err))
		utils.LogError("JIRA_EMAIL と JIRA_API_TOKEN を確認してください。")
		return 1
	}

	fmt.Fprintln(stdout, color.New(color.FgGreen).Sprintf("✅ JIRA認証成功！ 接続先: %s", cfg.JiraURL))
	return 0
}

// ヘルプメッセージを表示する関数
func printHelp(out io.Writer) {
	fmt.Fprintf(out, `
JIRA認証確認ツール

使用方法:
  %s [オプション]

オプション:
  -help               このヘルプを表示する

環境変数:
  JIRA_DOMAIN         JIRA URL (必須)
  JIRA_EMAIL          JIRA APIアカウントのメールアドレス (必須)
  JIRA_API_TOKEN      JIRA APIトークン (必須)

説明:
  このツールはJIRA APIの認証情報が正しく設定されているかを確認します。
  認証が成功すれば、launch_report と field_list も正常に動作する可能性が高いです。
`, os.Args[0])
}
