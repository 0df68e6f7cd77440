package config

import (
	"os"
	"sync"
)

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

var (
	rabbitMQConfig *RabbitMQConfig
	rabbitMQOnce   sync.Once
)

// LoadRabbitMQConfig returns an empty URL when publishing is disabled.
func LoadRabbitMQConfig() *RabbitMQConfig {
	rabbitMQOnce.Do(func() {
		rabbitMQConfig = &RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "internship_events"),
		}
	})
	return rabbitMQConfig
}
