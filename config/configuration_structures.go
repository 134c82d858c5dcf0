package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig : выбор бэкенда хранения файлов
// backend = "local" (директория на диске) или "s3"
type StorageConfig struct {
	Backend  string   `yaml:"backend"`
	LocalDir string   `yaml:"local_dir"`
	S3       S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
	Issuer    string `yaml:"issuer"`
}

type ShareConfig struct {
	// PublicBaseURL : префикс абсолютных публичных ссылок, например https://drive.example.com
	PublicBaseURL string `yaml:"public_base_url"`
	TokenLength   int    `yaml:"token_length"`
}

type UploadConfig struct {
	// MaxSizeBytes : максимальный размер загружаемого файла (по умолчанию 100 МБ)
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

type CacheConfig struct {
	// TTLSeconds : время жизни записи о файле в Redis
	TTLSeconds int `yaml:"ttl_seconds"`
}
