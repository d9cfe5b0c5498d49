package config

import (
	"log"
	"os"
	"strconv"

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
		TTL    int    `yaml:"ttl"` // в минутах
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // для local
		BaseURL    string `yaml:"base_url"`    // база публичных URL
		Bucket     string `yaml:"bucket"`      // физический бакет S3/R2
		Region     string `yaml:"region"`      // для S3
		AccessKey  string `yaml:"access_key"`  // для S3/R2
		SecretKey  string `yaml:"secret_key"`  // для S3/R2
		Endpoint   string `yaml:"endpoint"`    // для R2 или кастомного S3
		PublicRead bool   `yaml:"public_read"` // файлы публичны по умолчанию
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // максимальный размер файла, байт
	} `yaml:"upload"`

	Stripe struct {
		SecretKey  string `yaml:"secret_key"`
		SuccessURL string `yaml:"success_url"` // fallback, если нет Origin
		CancelURL  string `yaml:"cancel_url"`
		Currency   string `yaml:"currency"`
		// Границы для "простого" платежа с клиентской суммой
		MinAmount float64 `yaml:"min_amount"`
		MaxAmount float64 `yaml:"max_amount"`
	} `yaml:"stripe"`

	Reminders struct {
		IntervalMinutes int `yaml:"interval_minutes"` // период фонового worker'а
		BatchSize       int `yaml:"batch_size"`
	} `yaml:"reminders"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml,
// либо целиком из переменных окружения (режим теста/контейнера).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEnvOverrides(&cfg)
		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyEnvOverrides: секреты всегда можно переопределить окружением,
// чтобы не хранить их в yaml.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 * 1024 * 1024 // 50MB
	}
	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = "usd"
	}
	if cfg.Stripe.MinAmount == 0 {
		cfg.Stripe.MinAmount = 1
	}
	if cfg.Stripe.MaxAmount == 0 {
		cfg.Stripe.MaxAmount = 10000
	}
	if cfg.Stripe.SuccessURL == "" {
		cfg.Stripe.SuccessURL = "http://localhost:3000/payment-success"
	}
	if cfg.Stripe.CancelURL == "" {
		cfg.Stripe.CancelURL = "http://localhost:3000/payment-cancelled"
	}
	if cfg.Reminders.IntervalMinutes == 0 {
		cfg.Reminders.IntervalMinutes = 5
	}
	if cfg.Reminders.BatchSize == 0 {
		cfg.Reminders.BatchSize = 100
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
