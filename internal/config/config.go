package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env string

	GitHubToken  string
	GitHubAPIURL string

	LLMBaseURL   string
	LLMAPIKey    string
	LLMModel     string
	LLMMaxTokens int

	HTTPTimeout time.Duration

	// AnalysisTimeout bounds one whole analysis request, end to end.
	AnalysisTimeout time.Duration

	Port               int
	CORSAllowedOrigins []string
}

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultLLMBaseURL   = "https://api.openai.com/v1"
	defaultLLMModel     = "gpt-4o-mini"
	defaultMaxTokens    = 1000
	defaultHTTPTimeout  = 60 * time.Second
	defaultAnalysis     = 5 * time.Minute
	defaultPort         = 5000
)

// Load reads .env (if present) and the process environment. Call it once at
// startup and pass the result down; nothing else reads the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for
// blank or unparsable values.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Env: getenv("APP_ENV"),

		GitHubToken:  getenv("GITHUB_TOKEN"),
		GitHubAPIURL: getenv("GITHUB_API_URL"),

		LLMBaseURL: getenv("LLM_BASE_URL"),
		LLMAPIKey:  getenv("OPENAI_API_KEY"),
		LLMModel:   getenv("LLM_MODEL"),

		LLMMaxTokens: intOr(getenv("LLM_MAX_TOKENS"), defaultMaxTokens),
		HTTPTimeout:  durationOr(getenv("HTTP_TIMEOUT"), defaultHTTPTimeout),
		Port:         intOr(getenv("PORT"), defaultPort),

		AnalysisTimeout: durationOr(getenv("ANALYSIS_TIMEOUT"), defaultAnalysis),

		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = getenv("LLM_API_KEY")
	}
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = defaultGitHubAPIURL
	}
	cfg.GitHubAPIURL = strings.TrimSuffix(cfg.GitHubAPIURL, "/")
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = defaultLLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultLLMModel
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg
}

// IsDev reports whether development logging and server banners are enabled.
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

func intOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
