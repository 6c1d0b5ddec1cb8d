package prompt

import (
	"strings"
)

// Builder assembles the system prompt for one chat turn around the retrieved
// knowledge-base context.
type Builder struct {
	contextText string
}

func NewBuilder(contextText string) *Builder {
	return &Builder{contextText: contextText}
}

// Build produces the full system prompt. The answer rules instruct the model
// to tag its source with the 【来源：...】 marker, which the streaming relay
// parses back out.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeIdentity(&prompt)
	b.writeContext(&prompt)
	b.writeRules(&prompt)

	return prompt.String()
}

func (b *Builder) writeIdentity(prompt *strings.Builder) {
	prompt.WriteString("你是一个企业智能客服助手，名叫\"智谱AI助手\"。\n\n")
}

func (b *Builder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("以下是从知识库中检索到的相关文档内容，请优先基于这些内容来回答用户问题：\n\n")
	prompt.WriteString("=====知识库文档内容=====\n")
	prompt.WriteString(b.contextText)
	prompt.WriteString("\n======================\n\n")
}

func (b *Builder) writeRules(prompt *strings.Builder) {
	prompt.WriteString("回答规则：\n")
	prompt.WriteString("1. **优先使用**上方文档中的实际内容回答，尽量引用原文中的关键数据和信息\n")
	prompt.WriteString("2. 使用 **加粗** 标注关键信息\n")
	prompt.WriteString("3. 如果文档中有相关内容，在回答末尾用【来源：文件名或知识库名】标注\n")
	prompt.WriteString("4. 如果文档内容不足以完整回答，可以补充通用知识，但要说明哪些是文档内容，哪些是补充\n")
	prompt.WriteString("5. 语言简洁专业，可使用分点列举\n")
	prompt.WriteString("6. 如果完全没有相关内容，诚实说明")
}
