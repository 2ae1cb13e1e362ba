package config

// ApplyDefaults sets default values for any zero values in cfg.
// The extraction/detection thresholds keep their relative ordering:
// document timeout > page timeout, and the PDF quality gate sits between
// the recovery threshold and the upload floor.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 10 << 20 // 10MB
	}
	if cfg.Extract.DocTimeoutSeconds == 0 {
		cfg.Extract.DocTimeoutSeconds = 15
	}
	if cfg.Extract.PageTimeoutSeconds == 0 {
		cfg.Extract.PageTimeoutSeconds = 5
	}
	if cfg.Extract.MinPDFTextLen == 0 {
		cfg.Extract.MinPDFTextLen = 80
	}
	if cfg.Extract.MinRecoveredLen == 0 {
		cfg.Extract.MinRecoveredLen = 20
	}
	if cfg.Detect.MinLength == 0 {
		cfg.Detect.MinLength = 20
	}
	if cfg.Summarizer.Provider == "" {
		cfg.Summarizer.Provider = "openai"
	}
	if cfg.Summarizer.APIKeyEnv == "" {
		switch cfg.Summarizer.Provider {
		case "claude":
			cfg.Summarizer.APIKeyEnv = "ANTHROPIC_API_KEY"
		default:
			cfg.Summarizer.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.Summarizer.MaxTokens == 0 {
		cfg.Summarizer.MaxTokens = 1024
	}
	if cfg.Summarizer.TimeoutSeconds == 0 {
		cfg.Summarizer.TimeoutSeconds = 60
	}
	if cfg.Summarizer.MultiCallThreshold == 0 {
		cfg.Summarizer.MultiCallThreshold = 100000
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = ".local/share/summarizer/history.db"
	}
	if cfg.Storage.HistoryLimit == 0 {
		cfg.Storage.HistoryLimit = 20
	}
}
