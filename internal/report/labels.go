package report

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"golang.org/x/text/language"
)

// Labels holds the locale-specific wording of a rendered report. Section
// order and the None placeholder behaviour do not depend on it.
type Labels struct {
	Locale string

	TitleDay   string // one %s: the day
	TitleRange string // two %s: from, to
	Generated  string // one %s: generation date

	Projects   string
	Completed  string
	InProgress string
	Delayed    string
	Adhoc      string
	WorkLogs   string
	NextSteps  string
	Error      string

	None         string
	NoNextSteps  string
	Unclassified string
	DeletedTask  string

	DelayedDetail string // %d progress, %s due date, %d days late
	NextStep      string // %s task name, %d remaining percent

	ShortDate func(calendar.Date) string
}

// English is the default label set.
var English = Labels{
	Locale:        "en",
	TitleDay:      "## Progress report for %s",
	TitleRange:    "## Progress report for %s – %s",
	Generated:     "Generated: %s",
	Projects:      "### Projects",
	Completed:     "### Completed",
	InProgress:    "### In progress",
	Delayed:       "### Delayed / at risk",
	Adhoc:         "### Ad-hoc tasks",
	WorkLogs:      "### Work logs",
	NextSteps:     "### Next steps",
	Error:         "### Report error",
	None:          "- None",
	NoNextSteps:   "- Nothing scheduled",
	Unclassified:  "Unclassified",
	DeletedTask:   "Deleted task",
	DelayedDetail: "%d%%, due %s, %d days late",
	NextStep:      "%s: continue (%d%% remaining)",
	ShortDate: func(d calendar.Date) string {
		return d.Time().Format("Jan 2")
	},
}

// Japanese is the label set for ja locales.
var Japanese = Labels{
	Locale:        "ja",
	TitleDay:      "## %sの進捗報告",
	TitleRange:    "## %s〜%sの進捗報告",
	Generated:     "作成日: %s",
	Projects:      "### プロジェクト",
	Completed:     "### 完了タスク",
	InProgress:    "### 進行中タスク",
	Delayed:       "### 遅延/リスクありタスク",
	Adhoc:         "### 一時タスク/その他",
	WorkLogs:      "### 作業ログ",
	NextSteps:     "### 次回報告までの予定",
	Error:         "### 報告エラー",
	None:          "- なし",
	NoNextSteps:   "- 予定タスクなし",
	Unclassified:  "未分類",
	DeletedTask:   "削除済みタスク",
	DelayedDetail: "%d%%, 期限: %s, %d日超過",
	NextStep:      "%sの継続 (残%d%%)",
	ShortDate: func(d calendar.Date) string {
		return fmt.Sprintf("%d月%d日", int(d.Month()), d.Day())
	},
}

// LabelsFor returns the label set for a BCP 47 locale tag such as "ja" or
// "ja-JP", defaulting to English.
func LabelsFor(locale string) Labels {
	locale = strings.TrimSpace(locale)
	if strings.EqualFold(locale, "jp") {
		return Japanese
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return English
	}
	if base, _ := tag.Base(); base == japanese {
		return Japanese
	}
	return English
}

var japanese, _ = language.Japanese.Base()
