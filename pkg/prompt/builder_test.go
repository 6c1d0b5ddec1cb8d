package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	contextText := "📄 来源文件：员工手册.pdf（知识库：公司政策）\n正式员工享有带薪年假。"
	got := NewBuilder(contextText).Build()

	if !strings.Contains(got, contextText) {
		t.Errorf("Build() missing context text")
	}
	if !strings.Contains(got, "=====知识库文档内容=====") {
		t.Errorf("Build() missing context delimiter")
	}
	if !strings.Contains(got, "【来源：文件名或知识库名】") {
		t.Errorf("Build() missing source marker instruction")
	}
	if !strings.HasPrefix(got, "你是一个企业智能客服助手") {
		t.Errorf("Build() does not open with the assistant identity")
	}
}

func TestBuildContextBetweenDelimiters(t *testing.T) {
	got := NewBuilder("测试内容").Build()

	open := strings.Index(got, "=====知识库文档内容=====")
	body := strings.Index(got, "测试内容")
	closing := strings.Index(got, "======================")
	if !(open < body && body < closing) {
		t.Errorf("Build() context not enclosed by delimiters: open=%d body=%d close=%d", open, body, closing)
	}
}
