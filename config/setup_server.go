package config

import (
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
)

type AppConfig struct {
	ServerAddr     string         `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	Storage        StorageConfig  `yaml:"storage"`
	Auth           AuthConfig     `yaml:"auth"`
	Share          ShareConfig    `yaml:"share"`
	Upload         UploadConfig   `yaml:"upload"`
	Cache          CacheConfig    `yaml:"cache"`
}

const (
	DefaultMaxUploadSize    = 100 << 20 // 100 МБ
	DefaultShareTokenLength = 32
	DefaultCacheTTLSeconds  = 300
)

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if cfg.Upload.MaxSizeBytes == 0 {
		cfg.Upload.MaxSizeBytes = DefaultMaxUploadSize
	}
	if cfg.Share.TokenLength == 0 {
		cfg.Share.TokenLength = DefaultShareTokenLength
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}

	return &cfg, nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
