package dashboard

import (
	"cmp"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Labels holds every user-facing string on the page.
type Labels struct {
	PageTitle      string `yaml:"page_title"`
	Title          string `yaml:"title"`
	Byline         string `yaml:"byline"`
	Sidebar        string `yaml:"sidebar"`
	CategoryLabel  string `yaml:"category_label"`
	StartDate      string `yaml:"start_date"`
	EndDate        string `yaml:"end_date"`
	Refresh        string `yaml:"refresh"`
	PriorityHeader string `yaml:"priority_header"`
	NormalHeader   string `yaml:"normal_header"`
	ImpactPrefix   string `yaml:"impact_prefix"`
	SummaryPrefix  string `yaml:"summary_prefix"`
	OpenOriginal   string `yaml:"open_original"`
	ArticleLink    string `yaml:"article_link"`
	NoPriority     string `yaml:"no_priority"`
	NoNormal       string `yaml:"no_normal"`
	Warning        string `yaml:"warning"`
}

func DefaultLabels() Labels {
	return Labels{
		PageTitle:      "Robot Intelligence Report",
		Title:          "🤖 Robot Industry Insight",
		Byline:         "카카오모빌리티 로봇 사업팀_luke.kw",
		Sidebar:        "🕹️ 컨트롤 패널",
		CategoryLabel:  "관심 카테고리",
		StartDate:      "시작일",
		EndDate:        "종료일",
		Refresh:        "🔄 데이터 새로고침",
		PriorityHeader: "🔥 Priority Briefing",
		NormalHeader:   "🌍 Global Trends",
		ImpactPrefix:   "Impact: ",
		SummaryPrefix:  "요약: ",
		OpenOriginal:   "원문 보기",
		ArticleLink:    "기사 링크",
		NoPriority:     "중요 이슈 없음",
		NoNormal:       "추가 소식 없음",
		Warning:        "데이터를 불러오는 중입니다. (Make가 실행되었는지, CSV 링크가 맞는지 확인해주세요)",
	}
}

// LoadLabels reads label overrides from a YAML file. An empty path yields the
// defaults; keys missing from the file keep their default value.
func LoadLabels(path string) (Labels, error) {
	if path == "" {
		return DefaultLabels(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Labels{}, fmt.Errorf("failed to read file: %w", err)
	}

	var labels Labels
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return Labels{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&labels)

	return labels, nil
}

func setDefaults(labels *Labels) {
	defaults := DefaultLabels()

	labels.PageTitle = cmp.Or(labels.PageTitle, defaults.PageTitle)
	labels.Title = cmp.Or(labels.Title, defaults.Title)
	labels.Byline = cmp.Or(labels.Byline, defaults.Byline)
	labels.Sidebar = cmp.Or(labels.Sidebar, defaults.Sidebar)
	labels.CategoryLabel = cmp.Or(labels.CategoryLabel, defaults.CategoryLabel)
	labels.StartDate = cmp.Or(labels.StartDate, defaults.StartDate)
	labels.EndDate = cmp.Or(labels.EndDate, defaults.EndDate)
	labels.Refresh = cmp.Or(labels.Refresh, defaults.Refresh)
	labels.PriorityHeader = cmp.Or(labels.PriorityHeader, defaults.PriorityHeader)
	labels.NormalHeader = cmp.Or(labels.NormalHeader, defaults.NormalHeader)
	labels.ImpactPrefix = cmp.Or(labels.ImpactPrefix, defaults.ImpactPrefix)
	labels.SummaryPrefix = cmp.Or(labels.SummaryPrefix, defaults.SummaryPrefix)
	labels.OpenOriginal = cmp.Or(labels.OpenOriginal, defaults.OpenOriginal)
	labels.ArticleLink = cmp.Or(labels.ArticleLink, defaults.ArticleLink)
	labels.NoPriority = cmp.Or(labels.NoPriority, defaults.NoPriority)
	labels.NoNormal = cmp.Or(labels.NoNormal, defaults.NoNormal)
	labels.Warning = cmp.Or(labels.Warning, defaults.Warning)
}
