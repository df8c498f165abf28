package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Driver string
		URL    string
	}
	Server struct {
		Port int
	}
	Scraper struct {
		SourceURL string
		UserAgent string
	}
	Poster struct {
		BotToken  string
		ChannelID string
		BatchSize int
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Default values
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.url", "")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("scraper.sourceurl", "")
	viper.SetDefault("scraper.useragent", "Prolixy Scraper Bot v1.0")
	viper.SetDefault("poster.bottoken", "")
	viper.SetDefault("poster.channelid", "")
	viper.SetDefault("poster.batchsize", 10)

	// Environment overrides, e.g. PROLIXY_DATABASE_URL
	viper.SetEnvPrefix("prolixy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required")
	}

	if config.Poster.BatchSize <= 0 {
		return nil, fmt.Errorf("poster.batchsize must be a positive integer")
	}

	return &config, nil
}
