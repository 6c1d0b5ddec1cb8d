package retrieval

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func demoKnowledgeBases() []KnowledgeBase {
	return []KnowledgeBase{
		{
			Name:         "公司政策",
			Description:  "包含人力资源、报销流程等核心文档",
			UpdatedLabel: "2小时前",
			Documents: []Document{
				{
					ID:            "doc-policy",
					Name:          "员工手册.pdf",
					UploadedLabel: "1天前",
					Synced:        true,
					Text:          "正式员工享有带薪年假，入职满1年不满10年每年5天。年假申请须提前提交。",
				},
			},
		},
		{
			Name:         "产品常见问题",
			Description:  "汇总用户最常问的产品操作问题",
			UpdatedLabel: "5小时前",
			Documents: []Document{
				{
					ID:     "doc-faq",
					Name:   "登录问题.docx",
					Synced: true,
					Text:   "忘记密码时可以通过绑定邮箱重置。",
				},
			},
		},
	}
}

func TestAssembleAttributionFromBestMatch(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())

	bundle := assembler.Assemble("年假 申请", demoKnowledgeBases(), 3000)

	if !strings.Contains(bundle.Text, "员工手册.pdf") {
		t.Fatalf("Assemble() text missing matching document, got %q", bundle.Text)
	}
	if bundle.Source == nil {
		t.Fatal("Assemble() Source = nil, want attribution for scoring document")
	}
	if bundle.Source.Name != "公司政策 - 员工手册.pdf" {
		t.Errorf("Source.Name = %q, want %q", bundle.Source.Name, "公司政策 - 员工手册.pdf")
	}
	if bundle.Source.UpdatedAt != "1天前" {
		t.Errorf("Source.UpdatedAt = %q, want document upload label", bundle.Source.UpdatedAt)
	}
}

func TestAssembleAttributionFallsBackToKnowledgeBaseLabel(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())

	bundle := assembler.Assemble("重置 密码", demoKnowledgeBases(), 3000)

	if bundle.Source == nil {
		t.Fatal("Assemble() Source = nil, want attribution")
	}
	if bundle.Source.UpdatedAt != "5小时前" {
		t.Errorf("Source.UpdatedAt = %q, want knowledge base label when upload label is empty", bundle.Source.UpdatedAt)
	}
}

func TestAssembleNilSourceWhenNothingMatches(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())

	bundle := assembler.Assemble("差旅住宿标准", demoKnowledgeBases(), 3000)

	if bundle.Text == "" {
		t.Fatal("Assemble() Text empty, want zero-score documents still included")
	}
	if bundle.Source != nil {
		t.Errorf("Assemble() Source = %+v, want nil when no document scores", bundle.Source)
	}
}

func TestAssembleOrdersByScore(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := demoKnowledgeBases()

	// The FAQ document mentions 密码 twice after this edit, so it must come
	// before the policy document for a password query.
	kbs[1].Documents[0].Text = "忘记密码时可以重置密码。"

	bundle := assembler.Assemble("密码", kbs, 3000)

	idxFaq := strings.Index(bundle.Text, "登录问题.docx")
	idxPolicy := strings.Index(bundle.Text, "员工手册.pdf")
	if idxFaq < 0 || idxPolicy < 0 {
		t.Fatalf("Assemble() text missing documents, got %q", bundle.Text)
	}
	if idxFaq > idxPolicy {
		t.Errorf("Assemble() ordered a zero-score document before the matching one")
	}
}

func TestAssembleBudgetCapInRunes(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := demoKnowledgeBases()
	kbs[0].Documents[0].Text = strings.Repeat("年假政策说明", 500)
	kbs[1].Documents[0].Text = strings.Repeat("密码问题答案", 500)

	const budget = 120
	bundle := assembler.Assemble("年假 密码", kbs, budget)

	if n := utf8.RuneCountInString(bundle.Text); n > budget {
		t.Errorf("Assemble() produced %d runes, want at most %d", n, budget)
	}
}

func TestAssembleSkipsUnsyncedAndEmptyDocuments(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := []KnowledgeBase{
		{
			Name:        "售后流程",
			Description: "标准化的售后处理逻辑",
			Documents: []Document{
				{ID: "a", Name: "待索引.pdf", Synced: false, Text: "退换货政策说明"},
				{ID: "b", Name: "空文件.txt", Synced: true, Text: ""},
			},
		},
	}

	bundle := assembler.Assemble("退换货", kbs, 3000)

	if strings.Contains(bundle.Text, "待索引.pdf") || strings.Contains(bundle.Text, "空文件.txt") {
		t.Errorf("Assemble() included an unsynced or empty document: %q", bundle.Text)
	}
	if !strings.Contains(bundle.Text, "当前知识库包含") {
		t.Errorf("Assemble() = %q, want knowledge base summary fallback", bundle.Text)
	}
}

func TestAssembleFallbackSummaryFormat(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := []KnowledgeBase{
		{Name: "公司政策", Description: "包含人力资源、报销流程等核心文档"},
		{Name: "员工手册", Description: "关于公司文化、价值观及日常行为准则"},
	}

	bundle := assembler.Assemble("任何问题", kbs, 3000)

	if !strings.Contains(bundle.Text, "「公司政策」(包含人力资源、报销流程等核心文档)") {
		t.Errorf("fallback summary missing first knowledge base, got %q", bundle.Text)
	}
	if !strings.Contains(bundle.Text, "「公司政策」(包含人力资源、报销流程等核心文档)、「员工手册」") {
		t.Errorf("fallback summary not joined with 、, got %q", bundle.Text)
	}
	if bundle.Source != nil {
		t.Errorf("fallback bundle Source = %+v, want nil", bundle.Source)
	}
}

func TestAssembleDefaultBudget(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := demoKnowledgeBases()
	kbs[0].Documents[0].Text = strings.Repeat("年假", 4000)

	bundle := assembler.Assemble("年假", kbs, 0)

	n := utf8.RuneCountInString(bundle.Text)
	if n == 0 || n > DefaultBudget {
		t.Errorf("Assemble() with zero budget produced %d runes, want within default budget %d", n, DefaultBudget)
	}
}

func TestAssembleKeepsScanOrderForEqualScores(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())
	kbs := []KnowledgeBase{
		{
			Name: "报销指南",
			Documents: []Document{
				{ID: "a", Name: "流程说明.txt", Synced: true, Text: "报销流程说明"},
				{ID: "b", Name: "填写指南.txt", Synced: true, Text: "报销单填写指南"},
			},
		},
		{
			Name: "差旅制度",
			Documents: []Document{
				{ID: "c", Name: "差旅报销.txt", Synced: true, Text: "差旅费用也走报销"},
			},
		},
	}

	// Every document mentions 报销 exactly once, so the sort must not
	// reorder them.
	bundle := assembler.Assemble("报销", kbs, 3000)

	idxA := strings.Index(bundle.Text, "流程说明.txt")
	idxB := strings.Index(bundle.Text, "填写指南.txt")
	idxC := strings.Index(bundle.Text, "差旅报销.txt")
	if idxA < 0 || idxB < 0 || idxC < 0 {
		t.Fatalf("Assemble() text missing documents, got %q", bundle.Text)
	}
	if !(idxA < idxB && idxB < idxC) {
		t.Errorf("Assemble() reordered equal-score documents: positions %d, %d, %d", idxA, idxB, idxC)
	}
	if bundle.Source == nil || bundle.Source.Name != "报销指南 - 流程说明.txt" {
		t.Errorf("Assemble() Source = %+v, want the first-scanned document", bundle.Source)
	}
}

func TestAssembleEmptyKnowledgeBaseSet(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())

	bundle := assembler.Assemble("年假", nil, 3000)

	if !strings.HasPrefix(bundle.Text, "当前知识库包含：") {
		t.Errorf("Assemble() = %q, want summary fallback even with no knowledge bases", bundle.Text)
	}
	if strings.Contains(bundle.Text, "「") {
		t.Errorf("Assemble() enumerated knowledge bases that do not exist: %q", bundle.Text)
	}
	if bundle.Source != nil {
		t.Errorf("Assemble() Source = %+v, want nil", bundle.Source)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	assembler := NewAssembler(NewKeywordScorer())

	first := assembler.Assemble("年假", demoKnowledgeBases(), 3000)
	second := assembler.Assemble("年假", demoKnowledgeBases(), 3000)

	if first.Text != second.Text {
		t.Errorf("Assemble() not deterministic for identical inputs")
	}
}
