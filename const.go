package iterbot

// Loop defaults.
const (
	// DefaultMaxIterations is the iteration ceiling for a single run.
	DefaultMaxIterations = 15

	// DefaultMaxCustomPromptSize bounds the custom system prompt, in runes.
	// Longer prompts are truncated at assignment time.
	DefaultMaxCustomPromptSize = 500

	// DefaultLoopThreshold is how many identical consecutive actions it
	// takes for a run to be declared stuck.
	DefaultLoopThreshold = 3
)

// =============================================================================
// Ollama Models
// https://ollama.com/library
// =============================================================================

const (
	// Llama Series
	ModelOllamaLlama32       = "llama3.2"
	ModelOllamaLlama32Vision = "llama3.2-vision"
	ModelOllamaLlama31       = "llama3.1"
	ModelOllamaLlama3        = "llama3"

	// Qwen Series
	ModelOllamaQwen3       = "qwen3"
	ModelOllamaQwen25      = "qwen2.5"
	ModelOllamaQwen25Coder = "qwen2.5-coder"

	// Mistral Series
	ModelOllamaMistral     = "mistral"
	ModelOllamaMistralNemo = "mistral-nemo"

	// Others
	ModelOllamaGemma2 = "gemma2"
	ModelOllamaPhi4   = "phi4"
)
