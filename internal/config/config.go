package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	RabbitMQ     RabbitMQConfig
	Ticketmaster TicketmasterConfig
	Sync         SyncConfig
}

type ServerConfig struct {
	Port       string
	Host       string
	CORSOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RabbitMQConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
}

type TicketmasterConfig struct {
	APIKey   string
	BaseURL  string
	PageSize int
}

type SyncConfig struct {
	RequestQueue     string
	ResultExchange   string
	ResultRoutingKey string
	PrefetchCount    int
	Interval         time.Duration
	Keyword          string
	City             string
	StateCode        string
	MaxPages         int
}

func Load() (*Config, error) {
	var missing []string

	get := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	getDefault := func(key, fallback string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return fallback
	}

	getInt := func(key string, fallback int) int {
		if val := os.Getenv(key); val != "" {
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				return n
			}
		}
		return fallback
	}

	getDuration := func(key string, fallback time.Duration) time.Duration {
		if val := os.Getenv(key); val != "" {
			if d, err := time.ParseDuration(val); err == nil && d >= 0 {
				return d
			}
		}
		return fallback
	}

	config := &Config{
		Server: ServerConfig{
			Port:       get("SERVER_PORT"),
			Host:       get("SERVER_HOST"),
			CORSOrigin: getDefault("CORS_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Host:     get("DB_HOST"),
			Port:     get("DB_PORT"),
			User:     get("DB_USER"),
			Password: get("DB_PASSWORD"),
			DBName:   get("DB_NAME"),
			SSLMode:  get("DB_SSLMODE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Host:     get("RABBITMQ_HOST"),
			Port:     get("RABBITMQ_PORT"),
			User:     get("RABBITMQ_USER"),
			Password: get("RABBITMQ_PASSWORD"),
			VHost:    get("RABBITMQ_VHOST"),
		},
		Ticketmaster: TicketmasterConfig{
			APIKey:   get("TICKETMASTER_API_KEY"),
			BaseURL:  getDefault("TICKETMASTER_BASE_URL", "https://app.ticketmaster.com/discovery/v2"),
			PageSize: getInt("TICKETMASTER_PAGE_SIZE", 50),
		},
		Sync: SyncConfig{
			RequestQueue:     getDefault("SYNC_REQUEST_QUEUE", "sync.requests"),
			ResultExchange:   getDefault("SYNC_RESULT_EXCHANGE", "sync.results"),
			ResultRoutingKey: getDefault("SYNC_RESULT_ROUTING_KEY", "sync.completed"),
			PrefetchCount:    getInt("SYNC_PREFETCH_COUNT", 1),
			Interval:         getDuration("SYNC_INTERVAL", 6*time.Hour),
			Keyword:          os.Getenv("SYNC_KEYWORD"),
			City:             os.Getenv("SYNC_CITY"),
			StateCode:        os.Getenv("SYNC_STATE_CODE"),
			MaxPages:         getInt("SYNC_MAX_PAGES", 2),
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return config, nil
}

// ConnectionString returns a DSN string for GORM
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// MigrationURL returns a postgres:// URL for golang-migrate
func (c *DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func (c *RabbitMQConfig) ConnectionURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s%s",
		c.User, c.Password, c.Host, c.Port, c.VHost)
}
