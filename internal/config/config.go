package config

// Config represents the full application configuration.
type Config struct {
	Server    ServerConfig              `yaml:"server"`
	GitHub    GitHubConfig              `yaml:"github"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Review    ReviewConfig              `yaml:"review"`
	Redaction RedactionConfig           `yaml:"redaction"`
	Git       GitConfig                 `yaml:"git"`
	Output    OutputConfig              `yaml:"output"`
	Logging   LoggingConfig             `yaml:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"readTimeout"`
	WriteTimeout string `yaml:"writeTimeout"`
}

// GitHubConfig configures the source-hosting API client and the inbound
// webhook secret.
type GitHubConfig struct {
	// Token is optional; absence degrades to unauthenticated calls.
	Token   string `yaml:"token"`
	BaseURL string `yaml:"baseURL"`
	Timeout string `yaml:"timeout"`
	// WebhookSecret authenticates inbound events. Empty disables
	// signature verification, which is insecure and loudly warned about
	// at startup.
	WebhookSecret string `yaml:"webhookSecret"`
}

// ProviderConfig configures a single model provider.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	Timeout string `yaml:"timeout"`
}

// ReviewConfig selects the provider used for reviews.
type ReviewConfig struct {
	Provider string `yaml:"provider"`
}

// RedactionConfig toggles secret masking of logged and surfaced text.
type RedactionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GitConfig locates the repository for local CLI reviews.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// OutputConfig locates Markdown artifacts written by the CLI.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // human or json
}
