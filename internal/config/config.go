package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	S3     S3Config
	App    AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
	UploadTimeout   time.Duration
}

type AppConfig struct {
	MaxUploadSize int64
	MinDimension  int
	MaxDimension  int
	JPEGQuality   int
	WebPQuality   float32
	KeyPrefix     string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("S3_BUCKET_NAME", "resized-images")
	viper.SetDefault("S3_REGION", "ap-south-1")
	viper.SetDefault("S3_UPLOAD_TIMEOUT", "30s")
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10MB
	viper.SetDefault("APP_MIN_DIMENSION", 10)
	viper.SetDefault("APP_MAX_DIMENSION", 10000)
	viper.SetDefault("APP_JPEG_QUALITY", 85)
	viper.SetDefault("APP_WEBP_QUALITY", 80)
	viper.SetDefault("APP_KEY_PREFIX", "resized/")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		S3: S3Config{
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          viper.GetBool("S3_USE_SSL"),
			BucketName:      viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
			UploadTimeout:   viper.GetDuration("S3_UPLOAD_TIMEOUT"),
		},
		App: AppConfig{
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
			MinDimension:  viper.GetInt("APP_MIN_DIMENSION"),
			MaxDimension:  viper.GetInt("APP_MAX_DIMENSION"),
			JPEGQuality:   viper.GetInt("APP_JPEG_QUALITY"),
			WebPQuality:   float32(viper.GetFloat64("APP_WEBP_QUALITY")),
			KeyPrefix:     viper.GetString("APP_KEY_PREFIX"),
		},
	}

	return cfg, nil
}
