package retrieval

import "testing"

func TestKeywordScorerScore(t *testing.T) {
	scorer := NewKeywordScorer()

	tests := []struct {
		name  string
		query string
		text  string
		want  int
	}{
		{
			name:  "empty text scores zero",
			query: "报销",
			text:  "",
			want:  0,
		},
		{
			name:  "no token present",
			query: "年假 规定",
			text:  "这份文档介绍产品功能",
			want:  0,
		},
		{
			name:  "occurrences are summed",
			query: "报销 流程",
			text:  "报销单需要先走报销流程审批",
			want:  3,
		},
		{
			name:  "case insensitive",
			query: "API 文档",
			text:  "api 接口说明，详见 API 文档",
			want:  3,
		},
		{
			name:  "substring matches inside larger words",
			query: "sso",
			text:  "corporate-sso-gateway",
			want:  1,
		},
		{
			name:  "single rune query tokens ignored",
			query: "我 要 报销",
			text:  "我要报销我的差旅费",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(tt.query, tt.text); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.query, tt.text, got, tt.want)
			}
		})
	}
}
