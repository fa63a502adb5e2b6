package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// PublicURL overrides the request-derived base URL for absolute asset links.
		PublicURL      string   `yaml:"public_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		// AllowedHosts bounds the Host header used for asset URLs when PublicURL is empty.
		AllowedHosts     []string `yaml:"allowed_hosts"`
		ContactRateLimit int      `yaml:"contact_rate_limit"` // requests per minute per IP, 0 disables
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql, sqlite
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Email struct {
		Backend      string `yaml:"backend"` // smtp, console
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		UseSSL       bool   `yaml:"use_ssl"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		ContactTo    string `yaml:"contact_to"`
		SendTimeout  int    `yaml:"send_timeout"` // seconds
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	Site struct {
		OwnerName string `yaml:"owner_name"`
	} `yaml:"site"`

	Storage struct {
		Type         string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath     string `yaml:"base_path"` // For local storage
		BaseURL      string `yaml:"base_url"`  // Public URL base
		Bucket       string `yaml:"bucket"`
		Region       string `yaml:"region"`
		AccessKey    string `yaml:"access_key"`
		SecretKey    string `yaml:"secret_key"`
		Endpoint     string `yaml:"endpoint"`
		SignedURLTTL int    `yaml:"signed_url_ttl"` // seconds, used when base_url is empty
		UsePathStyle bool   `yaml:"use_path_style"`
	} `yaml:"storage"`
}

const DefaultContactRateLimit = 10

var AppConfig *Config

// LoadConfig reads the YAML file at CONFIG_PATH (default config/config.yaml) if it
// exists, then applies environment overrides and defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	// set before decoding so an explicit 0 in the file still disables the limit
	cfg.Server.ContactRateLimit = DefaultContactRateLimit

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := cfg.loadFile(configPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) || os.Getenv("CONFIG_PATH") != "" {
			return nil, err
		}
		log.Printf("config file %s not found, using environment only", configPath)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Env, "SERVER_ENV")
	setString(&c.Server.PublicURL, "PUBLIC_URL")
	setInt(&c.Server.ContactRateLimit, "CONTACT_RATE_LIMIT")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ALLOWED_HOSTS"); v != "" {
		c.Server.AllowedHosts = splitList(v)
	}

	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")

	setString(&c.Email.Backend, "EMAIL_BACKEND")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setBool(&c.Email.UseSSL, "SMTP_USE_SSL")
	setString(&c.Email.FromEmail, "DEFAULT_FROM_EMAIL")
	setString(&c.Email.ContactTo, "CONTACT_EMAIL_TO")
	setString(&c.Email.TemplatesDir, "TEMPLATES_DIR")

	setString(&c.Site.OwnerName, "SITE_OWNER_NAME")

	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&c.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.Region, "STORAGE_REGION")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.ContactRateLimit < 0 {
		c.Server.ContactRateLimit = 0
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.Backend == "" {
		if c.Email.SMTPHost != "" {
			c.Email.Backend = "smtp"
		} else {
			c.Email.Backend = "console"
		}
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = "webmaster@localhost"
	}
	if c.Email.SendTimeout <= 0 {
		c.Email.SendTimeout = 10
	}
	if c.Site.OwnerName == "" {
		c.Site.OwnerName = "Portfolio"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "./media"
	}
	if c.Storage.SignedURLTTL <= 0 {
		c.Storage.SignedURLTTL = 3600
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (database.url or DATABASE_URL)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.Email.Backend {
	case "smtp":
		if c.Email.SMTPHost == "" {
			return errors.New("smtp backend requires email.smtp_host")
		}
	case "console":
	default:
		return fmt.Errorf("unsupported email backend: %s", c.Email.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

// Warnings lists settings that are valid but unsafe for the current env.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Server.Env == "production" && c.Server.PublicURL == "" && len(c.Server.AllowedHosts) == 0 {
		warnings = append(warnings, "server.public_url and server.allowed_hosts are empty: asset URLs trust the client Host header")
	}
	return warnings
}

// ContactRecipient is the owner address for contact notifications.
func (c *Config) ContactRecipient() string {
	if c.Email.ContactTo != "" {
		return c.Email.ContactTo
	}
	return c.Email.FromEmail
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		return cfg
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
