package model

// Config holds the complete lovewall configuration
type Config struct {
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// LLMConfig configures the insight provider.
// An empty Provider or a missing credential disables live insights.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`       // empty uses the provider's default
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ServerConfig configures the JSON API
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second per client
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	ReadTimeout    int      `yaml:"read_timeout" mapstructure:"read_timeout"` // seconds
	WriteTimeout   int      `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// CatalogConfig selects the proof collection.
// An empty Path uses the built-in catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SearchConfig tunes the filter memo
type SearchConfig struct {
	MemoTTL int `yaml:"memo_ttl" mapstructure:"memo_ttl"` // seconds; 0 disables the memo
}

// LogConfig configures structured logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	File  string `yaml:"file,omitempty" mapstructure:"file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "gemini",
			Timeout:   20,
			MaxTokens: 512,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:      10,
			RateBurst:      20,
			ReadTimeout:    15,
			WriteTimeout:   15,
		},
		Search: SearchConfig{
			MemoTTL: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
