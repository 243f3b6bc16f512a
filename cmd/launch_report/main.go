package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"launchinsight/api"
	"launchinsight/config"
	"launchinsight/services"
	"launchinsight/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run はレポートを作成し、プロセスの終了コードを返します
func run(args []string, stdout io.Writer) int {
	// コマンドラインフラグの定義
	flags := flag.NewFlagSet("launch_report", flag.ContinueOnError)
	output := flags.String("output", "", "出力するCSVファイルのパス（指定しない場合は環境変数から取得）")
	days := flags.Int("days", 0, "今日から何日先までのリリースを対象にするか（指定しない場合は環境変数から取得）")
	field := flags.String("field", "", "リリース日のカスタムフィールドID（指定しない場合は環境変数から取得）")
	help := flags.Bool("help", false, "ヘルプを表示する")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(stdout)
		return 0
	}

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("設定の読み込みに失敗しました: %v", err)
		return 1
	}
	utils.SetLevel(cfg.LogLevel)

	// コマンドラインで指定された場合、設定を上書き
	if *output != "" {
		cfg.OutputCSV = *output
		utils.LogInfo("出力ファイルを指定: %s", cfg.OutputCSV)
	}
	if isFlagSet(flags, "days") {
		// 負の値は BuildLaunchQuery がエラーにする
		cfg.LookaheadDays = *days
		utils.LogInfo("対象日数を指定: %d", cfg.LookaheadDays)
	}
	if *field != "" {
		cfg.LaunchDateField = *field
		utils.LogInfo("リリース日フィールドを指定: %s", cfg.LaunchDateField)
	}

	jiraClient := api.NewJiraClient(cfg)
	writer := services.NewReportWriter(cfg.OutputCSV)
	reportService := services.NewLaunchReportService(cfg, jiraClient, writer)

	if _, err := reportService.Run(); err != nil {
		red := color.New(color.FgRed).SprintFunc()

		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(stdout, red(fmt.Sprintf("❌ API request failed with status %d", apiErr.StatusCode)))
			fmt.Fprintln(stdout, apiErr.Body)
			return 1
		}

		fmt.Fprintln(stdout, red(fmt.Sprintf("❌ %v", err)))
		return 1
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintln(stdout, green(fmt.Sprintf("✅ Feature launch insights saved to %s", writer.Path())))
	return 0
}

// isFlagSet はフラグがコマンドラインで明示的に指定されたかを返します
func isFlagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// ヘルプメッセージを表示する関数
func printHelp(out io.Writer) {
	fmt.Fprintf(out, `
リリースインサイトレポート作成ツール

使用方法:
  %s [オプション]

オプション:
  -output ファイル     出力するCSVファイル
  -days 日数           今日から何日先までを対象にするか (0以上)
  -field ID            リリース日のカスタムフィールドID
  -help                このヘルプを表示する

環境変数:
  JIRA_DOMAIN         JIRA URL (必須)
  JIRA_EMAIL          JIRA APIアカウントのメールアドレス (必須)
  JIRA_API_TOKEN      JIRA APIトークン (必須)
  PROJECT_KEY         JIRAプロジェクトキー (必須)
  LAUNCH_DATE_FIELD   リリース日のカスタムフィールドID (デフォルト: customfield_10040)
  DAYS_LOOKAHEAD      対象とする日数 (デフォルト: 90)
  OUTPUT_CSV          出力するCSVファイルパス (デフォルト: feature_launch_insights.csv)
  LOG_LEVEL           ログレベル (デフォルト: info)

説明:
  リリース日が今日から指定日数以内のイシューを取得し、
  ON_TRACK / AT_RISK / DELAYED のいずれかに分類してCSVに出力します。

  取得件数は最大100件です。それ以上の結果は含まれません。
  フィールドIDが分からない場合は field_list ツールで確認してください。
`, os.Args[0])
}
