package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultAPIURL is used when no backend origin is configured.
const DefaultAPIURL = "http://localhost:8000"

// Config 聚合整个客户端的配置项。
type Config struct {
	API     APIConfig
	Server  ServerConfig
	Log     LogConfig
	Profile ProfileConfig
	UI      UIConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	api, err := loadAPIConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ui, err := loadUIConfig()
	if err != nil {
		return nil, err
	}

	home := homeDir()

	return &Config{
		API:    api,
		Server: server,
		Log: LogConfig{
			Level:  getEnvOrDefault("COACH_LOG_LEVEL", "info"),
			Format: getEnvOrDefault("COACH_LOG_FORMAT", "console"),
			File:   getEnvOrDefault("COACH_LOG_FILE", filepath.Join(home, ".coach", "coach.log")),
		},
		Profile: ProfileConfig{
			Path: getEnvOrDefault("COACH_PROFILE", filepath.Join(home, ".coach", "profile.yaml")),
		},
		UI: ui,
	}, nil
}

// APIConfig 描述后端服务地址。
type APIConfig struct {
	BaseURL string
}

func loadAPIConfig() (APIConfig, error) {
	raw := getEnvOrDefault("COACH_API_URL", getEnvOrDefault("API_URL", DefaultAPIURL))
	base, err := normalizeOrigin(raw)
	if err != nil {
		return APIConfig{}, fmt.Errorf("invalid COACH_API_URL value %q: %w", raw, err)
	}
	return APIConfig{BaseURL: base}, nil
}

// ServerConfig 描述本地伴随服务（支付回跳页面）的配置。
type ServerConfig struct {
	Addr string
	// PublicURL is the origin the hosted checkout redirects back to.
	PublicURL string
}

// loadServerConfig 解析监听地址与对外地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5173"
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	addr := port
	if !strings.Contains(port, ":") {
		addr = ":" + port
	}

	public := strings.TrimSpace(os.Getenv("COACH_PUBLIC_URL"))
	if public == "" {
		host := addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		public = "http://" + host
	}

	normalized, err := normalizeOrigin(public)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid COACH_PUBLIC_URL value %q: %w", public, err)
	}

	return ServerConfig{Addr: addr, PublicURL: normalized}, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// ProfileConfig points at the read-only user profile.
type ProfileConfig struct {
	Path string
}

// UIConfig 描述终端界面行为。
type UIConfig struct {
	Markdown    bool
	OpenBrowser bool
	// Width caps the chat column; zero means use the terminal width.
	Width int
}

func loadUIConfig() (UIConfig, error) {
	markdown, err := parseBoolEnv("COACH_MARKDOWN", true)
	if err != nil {
		return UIConfig{}, err
	}

	openBrowser, err := parseBoolEnv("COACH_OPEN_BROWSER", true)
	if err != nil {
		return UIConfig{}, err
	}

	width := 0
	if override, err := parseOptionalIntEnv("COACH_WIDTH"); err != nil {
		return UIConfig{}, err
	} else if override != nil && *override > 0 {
		width = *override
	}

	return UIConfig{Markdown: markdown, OpenBrowser: openBrowser, Width: width}, nil
}

func normalizeOrigin(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "."
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
