package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog storage drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the billing system
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// CatalogConfig selects where menu catalogs are persisted
type CatalogConfig struct {
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "restaurant_user",
			Database: "restaurant_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			User: "guest",
		},
		Catalog: CatalogConfig{
			Driver: DriverFile,
			Dir:    ".",
		},
	}
}

// Load reads configuration from a YAML file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()
	if err := config.readFile(filename); err != nil {
		return nil, err
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) readFile(filename string) error {
	file, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if err := c.setValue(currentSection, key, value); err != nil {
			return fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	overrides := []struct {
		env     string
		section string
		key     string
	}{
		{"DB_HOST", "database", "host"},
		{"DB_PORT", "database", "port"},
		{"DB_USER", "database", "user"},
		{"DB_PASSWORD", "database", "password"},
		{"DB_NAME", "database", "database"},
		{"RABBITMQ_HOST", "rabbitmq", "host"},
		{"RABBITMQ_PORT", "rabbitmq", "port"},
		{"RABBITMQ_USER", "rabbitmq", "user"},
		{"RABBITMQ_PASSWORD", "rabbitmq", "password"},
		{"CATALOG_DRIVER", "catalog", "driver"},
		{"CATALOG_DIR", "catalog", "dir"},
	}

	for _, o := range overrides {
		v, ok := os.LookupEnv(o.env)
		if !ok || v == "" {
			continue
		}
		if err := c.setValue(o.section, o.key, v); err != nil {
			return fmt.Errorf("invalid %s: %w", o.env, err)
		}
	}
	return nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Catalog.Driver {
	case DriverFile, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("catalog.driver must be one of: file, postgres, memory")
	}
	return nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "database":
		return c.setDatabaseValue(key, value)
	case "rabbitmq":
		return c.setRabbitMQValue(key, value)
	case "catalog":
		return c.setCatalogValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setDatabaseValue sets database configuration values
func (c *Config) setDatabaseValue(key, value string) error {
	switch key {
	case "host":
		c.Database.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Database.Port = port
	case "user":
		c.Database.User = value
	case "password":
		c.Database.Password = value
	case "database":
		c.Database.Database = value
	default:
		return fmt.Errorf("unknown database key: %s", key)
	}
	return nil
}

// setRabbitMQValue sets RabbitMQ configuration values
func (c *Config) setRabbitMQValue(key, value string) error {
	switch key {
	case "host":
		c.RabbitMQ.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.RabbitMQ.Port = port
	case "user":
		c.RabbitMQ.User = value
	case "password":
		c.RabbitMQ.Password = value
	default:
		return fmt.Errorf("unknown rabbitmq key: %s", key)
	}
	return nil
}

func (c *Config) setCatalogValue(key, value string) error {
	switch key {
	case "driver":
		c.Catalog.Driver = value
	case "dir":
		c.Catalog.Dir = value
	default:
		return fmt.Errorf("unknown catalog key: %s", key)
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
