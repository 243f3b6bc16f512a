package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"launchinsight/api"
	"launchinsight/config"
	"launchinsight/services"
	"launchinsight/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run はフィールド一覧を stdout に出力し、プロセスの終了コードを返します
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("field_list", flag.ContinueOnError)
	help := flags.Bool("help", false, "ヘルプを表示する")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(stdout)
		return 0
	}

	cfg, err := config.LoadConnectionConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		return 1
	}
	utils.SetLevel(cfg.LogLevel)

	lister := services.NewFieldLister(api.NewJiraClient(cfg), stdout)
	if err := lister.Run(); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(stdout, "Error %d: %s\n", apiErr.StatusCode, apiErr.Body)
			return 1
		}

		utils.LogError("フィールド一覧の取得に失敗しました: %v", err)
		return 1
	}
	return 0
}

// ヘルプメッセージを表示する関数
func printHelp(out io.Writer) {
	fmt.Fprintf(out, `
JIRA フィールド一覧ツール

使用方法:
  %s [オプション]

オプション:
  -help               このヘルプを表示する

環境変数:
  JIRA_DOMAIN         JIRA URL (必須)
  JIRA_EMAIL          JIRA APIアカウントのメールアドレス (必須)
  JIRA_API_TOKEN      JIRA APIトークン (必須)

説明:
  JIRAに定義されている全フィールドのIDと名前を表示します。
  launch_report ツールの LAUNCH_DATE_FIELD に設定するIDを探すときに使います。
`, os.Args[0])
}
