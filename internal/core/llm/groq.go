package llm

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqProvider returns the default primary provider.
func NewGroqProvider(cfg *ProviderConfig) Provider {
	return newChatCompletionProvider("Groq", GroqBaseURL, cfg)
}
