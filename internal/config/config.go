package config

import "os"

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Inference InferenceConfig
}

type ServerConfig struct {
	Addr string
}

type AuthConfig struct {
	// JWTSecret has no fallback; the auth service refuses to start
	// without it.
	JWTSecret string
	TokenTTL  string
}

type InferenceConfig struct {
	APIToken  string
	VisionURL string
	TextURL   string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr: getenv("SERVER_ADDR", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getenv("JWT_TTL", "24h"),
		},
		Inference: InferenceConfig{
			APIToken:  os.Getenv("HF_TOKEN"),
			VisionURL: getenv("VISION_API_URL", "https://api-inference.huggingface.co/models/deepseek-ai/deepseek-vl-1.3b-chat"),
			TextURL:   getenv("TEXT_API_URL", "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.3"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
