package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Title assigned to a fresh session before the first user message names it.
	DefaultChatTitle = "新对话"

	// Runes of the first user message used as the session title.
	ChatTitleMaxRunes = 20

	// Previous messages included as conversation history in one chat turn.
	ChatHistoryWindow = 5

	// Greeting persisted as the first assistant message of a new session.
	ChatWelcomeMessage = "您好！我是您的智能助理。有什么我可以帮您的吗？您可以询问关于公司政策、报销、福利等方面的问题。"
)
