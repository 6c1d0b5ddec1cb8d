package retrieval

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSelectSnippetShortDocument(t *testing.T) {
	doc := "入职满1年不满10年的员工，每年享有5天带薪年假。"

	if got := SelectSnippet(doc, []string{"年假"}, 3000); got != doc {
		t.Errorf("SelectSnippet() = %q, want document unchanged", got)
	}

	got := SelectSnippet(doc, []string{"年假"}, 5)
	if got != string([]rune(doc)[:5]) {
		t.Errorf("SelectSnippet() with budget 5 = %q, want first 5 runes", got)
	}
}

func TestSelectSnippetParagraphSelection(t *testing.T) {
	relevant := "公司报销流程要求员工先在OA系统提交申请单，并附上对应的发票原件扫描件。"
	noise := "第3页"
	filler := strings.Repeat("这里是与报销主题完全无关的占位段落内容。", 2)
	padding := strings.Repeat("填充", 800)

	doc := strings.Join([]string{noise, relevant, filler, padding}, "\n\n")
	if utf8.RuneCountInString(doc) <= snippetThreshold {
		t.Fatalf("test document too short: %d runes", utf8.RuneCountInString(doc))
	}

	got := SelectSnippet(doc, []string{"报销", "流程"}, 3000)

	if !strings.Contains(got, relevant) {
		t.Errorf("SelectSnippet() = %q, want the relevant paragraph kept", got)
	}
	if strings.Contains(got, padding) {
		t.Errorf("SelectSnippet() kept a zero-score paragraph")
	}
	if strings.Contains(got, noise) {
		t.Errorf("SelectSnippet() kept a paragraph under the noise threshold")
	}
	// filler mentions 报销 once, so it scores 1 and ranks behind the
	// two-token paragraph but stays selected.
	idxRelevant := strings.Index(got, relevant)
	idxFiller := strings.Index(got, filler)
	if idxFiller >= 0 && idxFiller < idxRelevant {
		t.Errorf("SelectSnippet() ordered a one-token paragraph before a two-token one")
	}
}

func TestSelectSnippetStableOrderOnTies(t *testing.T) {
	first := "年假申请须提前5个工作日在OA系统提交，并经部门负责人批准后生效。"
	second := "年假未休完的部分可以结转至次年第一季度，逾期自动作废不再补偿。"
	padding := strings.Repeat("无关内容", 400)

	doc := first + "\n\n" + second + "\n\n" + padding

	got := SelectSnippet(doc, []string{"年假"}, 3000)

	if strings.Index(got, first) > strings.Index(got, second) {
		t.Errorf("SelectSnippet() reordered equally scored paragraphs")
	}
}

func TestSelectSnippetNoTokensKeepsLeadingParagraphs(t *testing.T) {
	paragraphs := make([]string, 7)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("段落内容", 60)
	}
	doc := strings.Join(paragraphs, "\n\n")

	got := SelectSnippet(doc, nil, 100000)

	want := maxParagraphs * utf8.RuneCountInString(paragraphs[0])
	gotRunes := utf8.RuneCountInString(got) - (maxParagraphs - 1) // joining newlines
	if gotRunes != want {
		t.Errorf("SelectSnippet() kept %d content runes, want %d (top %d paragraphs)", gotRunes, want, maxParagraphs)
	}
}

func TestSelectSnippetBudgetCap(t *testing.T) {
	doc := strings.Repeat("报销说明内容", 400)

	got := SelectSnippet(doc, []string{"报销"}, 200)

	if n := utf8.RuneCountInString(got); n > 200 {
		t.Errorf("SelectSnippet() returned %d runes, want at most 200", n)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "zero budget", s: "内容", n: 0, want: ""},
		{name: "negative budget", s: "内容", n: -1, want: ""},
		{name: "under budget unchanged", s: "内容", n: 10, want: "内容"},
		{name: "exact budget unchanged", s: "内容", n: 2, want: "内容"},
		{name: "multibyte cut on rune boundary", s: "带薪年假", n: 2, want: "带薪"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.s, tt.n); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}
