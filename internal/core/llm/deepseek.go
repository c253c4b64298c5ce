package llm

// DeepSeek uses OpenAI-compatible API with custom base URL
const DeepSeekBaseURL = "https://api.deepseek.com"

func NewDeepSeekProvider(cfg *ProviderConfig) Provider {
	return newChatCompletionProvider("DeepSeek", DeepSeekBaseURL, cfg)
}
