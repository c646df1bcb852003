package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // access token lifetime in minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	Admin struct {
		Login    string `yaml:"login"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

var AppConfig *Config

// LoadConfig fills AppConfig. When DATABASE_URL is set the whole config is
// taken from the environment (test and container deployments); otherwise it
// is read from the YAML file at CONFIG_PATH (default config/config.yaml).
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = getEnv("SERVER_ENV", "development")
		cfg.Server.Port, _ = strconv.Atoi(getEnv("SERVER_PORT", "4000"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL, _ = strconv.Atoi(getEnv("JWT_TTL", "60"))

		cfg.Email.SMTPHost = getEnv("MAIL_HOST", "localhost")
		cfg.Email.SMTPPort, _ = strconv.Atoi(getEnv("MAIL_PORT", "587"))
		cfg.Email.SMTPUser = os.Getenv("MAIL_USERNAME")
		cfg.Email.SMTPPassword = os.Getenv("MAIL_PASSWORD")
		cfg.Email.FromEmail = getEnv("MAIL_FROM_ADDRESS", "noreply@localhost")
		cfg.Email.FromName = getEnv("MAIL_FROM_NAME", "Blog")

		cfg.Storage.BasePath = getEnv("STORAGE_PATH", "./public")
		cfg.Storage.BaseURL = getEnv("STORAGE_URL", "/uploads")

		cfg.Admin.Login = getEnv("ADMIN_LOGIN", "admin")
		cfg.Admin.Email = getEnv("ADMIN_EMAIL", "admin@localhost")
		cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

		AppConfig = &cfg
		return
	}

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")

	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	AppConfig = &cfg
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
