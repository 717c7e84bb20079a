package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"dhapi/lib/configutil"
	"dhapi/lib/notify"
	"dhapi/lib/telemetry"

	"github.com/joho/godotenv"
)

const (
	envUsername = "DHAPI_USERNAME"
	envPassword = "DHAPI_PASSWORD"
)

type TelegramConfig struct {
	Token  string `json:"token"`
	ChatId int64  `json:"chat_id"`
}

type EmailConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c EmailConfig) smtp() notify.SmtpConfig {
	return notify.SmtpConfig{
		Server:       c.Server,
		Port:         c.Port,
		EmailAddress: c.EmailAddress,
		Password:     c.Password,
	}
}

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// BaseUrl and PurchaseUrl point the client at another portal, they
	// default to the real one.
	BaseUrl     string `json:"base_url"`
	PurchaseUrl string `json:"purchase_url"`
	// RateLimit is in requests per second, 0 uses the client default.
	RateLimit float64          `json:"rate_limit"`
	Telemetry telemetry.Config `json:"telemetry"`
	Telegram  *TelegramConfig  `json:"telegram"`
	Email     *EmailConfig     `json:"email"`
}

// loadConfig reads the config file if it exists, then lets the environment
// (optionally populated from a dotenv file) override the credentials.
func loadConfig(path, envFile string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using the environment only", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if envFile != "" {
		err = godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	if username, ok := os.LookupEnv(envUsername); ok && username != "" {
		cfg.Username = username
	}
	if password, ok := os.LookupEnv(envPassword); ok && password != "" {
		cfg.Password = password
	}

	if cfg.Username == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf(
			"no credentials, set username and password in %s or %s and %s in the environment",
			path, envUsername, envPassword,
		)
	}
	return cfg, nil
}
