package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds everything the process reads at startup. Values are read
// once and treated as immutable for the process lifetime.
type Config struct {
	HTTPAddress    string
	AllowedOrigins []string

	AWSRegion       string
	DdbContactTable string // empty disables the primary store

	NotifyQueueURL string // sqs notifier
	SMTPHost       string // smtp notifier
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string
	AdminEmail     string

	AdminUsername  string
	AdminBcryptPwd string
	JWTKey         string
}

// ReadFromEnv builds the config from environment variables, applying the
// optional server.toml overrides first.
func ReadFromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddress:    ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		AWSRegion:      "ap-south-1",
	}

	if path := os.Getenv("SERVER_TOML"); path != "" {
		if err := applyServerToml(cfg, path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTPAddress = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWSRegion = v
	}

	cfg.DdbContactTable = os.Getenv("DDB_CONTACT_TABLE")
	cfg.NotifyQueueURL = os.Getenv("NOTIFY_QUEUE_URL")
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = os.Getenv("SMTP_PORT")
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")

	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminBcryptPwd = os.Getenv("ADMIN_BCRYPT_PWD")
	cfg.JWTKey = os.Getenv("JWT_KEY")
	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY is not set")
	}

	return cfg, nil
}

// serverToml is the optional on-disk part of the config: deploy-specific
// server options that are awkward as env vars.
type serverToml struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func applyServerToml(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read server toml %s: %w", path, err)
	}
	var st serverToml
	if err := toml.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("failed to parse server toml %s: %w", path, err)
	}
	if st.Address != "" {
		cfg.HTTPAddress = st.Address
	}
	if len(st.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = st.AllowedOrigins
	}
	return nil
}
