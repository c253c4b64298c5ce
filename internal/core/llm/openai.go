package llm

func NewOpenAIProvider(cfg *ProviderConfig) Provider {
	return newChatCompletionProvider("OpenAI", "", cfg)
}
