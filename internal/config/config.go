package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	HTTP    HTTPConfig    `yaml:"http"`
	Gallery GalleryConfig `yaml:"gallery"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConf     `yaml:"redis"`
}

// APIConfig describes the upstream gallery API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type GalleryConfig struct {
	PageSize int           `yaml:"page_size" env-default:"25"`
	IdleTTL  time.Duration `yaml:"idle_ttl" env-default:"30m"`
}

type SessionConfig struct {
	Secret string        `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env-default:"12h"`
	Secure bool          `yaml:"secure" env-default:"false"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env-default:"0"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// LoadPath reads configPath and applies environment overrides.
func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config file does not exist", Path: configPath, Err: err}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if cfg.Gallery.PageSize <= 0 {
		cfg.Gallery.PageSize = 25
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
