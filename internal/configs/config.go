package configs

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL           string        `yaml:"base_url"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             int           `yaml:"burst"`
	} `yaml:"api"`

	Storage struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
	} `yaml:"storage"`

	Redis struct {
		Addr     string `yaml:"redis_addr"`
		Password string `yaml:"redis_password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`

	MockAPI struct {
		Port      string        `yaml:"port"`
		JWTSecret string        `yaml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
		Seed      bool          `yaml:"seed"`
		// SecretsDir holds one file per secret, named after its key.
		SecretsDir string `yaml:"secrets_dir"`
	} `yaml:"mock_api"`

	Mail struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     string `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_username"`
		SMTPPassword string `yaml:"smtp_password"`
		SenderEmail  string `yaml:"sender_email"`
	} `yaml:"mail"`
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Load reads internal/configs/{dev,prod}.yml relative to the working
// directory, then applies environment overrides.
func Load(env string) (*Config, error) {
	return LoadFrom(filepath.Join("internal", "configs"), env)
}

func LoadFrom(dir, env string) (*Config, error) {
	var cfg Config
	configFile := "dev.yml"

	if env == "production" {
		configFile = "prod.yml"
	}

	configPath := filepath.Join(dir, configFile)
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	log.Printf("Loading config from: %s", configPath)

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded overrides from .env")
	}

	expandConfig(&cfg)
	applyOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func expandConfig(cfg *Config) {
	cfg.API.BaseURL = os.ExpandEnv(cfg.API.BaseURL)
	cfg.Storage.Path = os.ExpandEnv(cfg.Storage.Path)
	cfg.Redis.Addr = os.ExpandEnv(cfg.Redis.Addr)
	cfg.Redis.Password = os.ExpandEnv(cfg.Redis.Password)
	cfg.MockAPI.JWTSecret = os.ExpandEnv(cfg.MockAPI.JWTSecret)
	cfg.MockAPI.SecretsDir = os.ExpandEnv(cfg.MockAPI.SecretsDir)
	cfg.Mail.SMTPHost = os.ExpandEnv(cfg.Mail.SMTPHost)
	cfg.Mail.SMTPUsername = os.ExpandEnv(cfg.Mail.SMTPUsername)
	cfg.Mail.SMTPPassword = os.ExpandEnv(cfg.Mail.SMTPPassword)
}

func applyOverrides(cfg *Config) {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.MockAPI.JWTSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.MockAPI.Port = v
	}
	if v := os.Getenv("API_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.API.RequestsPerSecond = rps
		} else {
			log.Printf("⚠️ Ignoring invalid API_RPS %q: %v", v, err)
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5005/api"
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 15 * time.Second
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(os.TempDir(), "povertyline", "session.yml")
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "povertyline:client"
	}
	if cfg.MockAPI.Port == "" {
		cfg.MockAPI.Port = "5005"
	}
	if cfg.MockAPI.TokenTTL <= 0 {
		cfg.MockAPI.TokenTTL = time.Hour
	}
	if cfg.Mail.SMTPPort == "" {
		cfg.Mail.SMTPPort = "587"
	}
	if cfg.Mail.SenderEmail == "" {
		cfg.Mail.SenderEmail = "no-reply@povertyline.org"
	}
}
