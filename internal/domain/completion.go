package domain

// InferenceConfig carries the decoding parameters for one completion call.
type InferenceConfig struct {
	MaxTokens   int32
	Temperature float32
	TopP        float32
}
