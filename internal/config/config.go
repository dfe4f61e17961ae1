package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   Server
	Data     Data
	Telegram Telegram
}

type Server struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8080"`
}

type Data struct {
	BaseURL         string        `envconfig:"DATA_BASE_URL" required:"true"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m"`
	Freshness       time.Duration `envconfig:"FRESHNESS_WINDOW" default:"10m"`
}

// Telegram is optional: the digest bot only starts when a token is set.
type Telegram struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
