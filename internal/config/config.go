package config

import (
	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config 从环境变量加载服务配置；工作目录下的 .env 文件（如存在）会先被应用
type Config struct {
	UploadDir     string `env:"UPLOAD_DIR,default=images"`
	MaxFileSizeMB int64  `env:"MAX_FILE_SIZE_MB,default=5"`
	LogDir        string `env:"LOG_DIR,default=logs"`
	Port          string `env:"PORT,default=8000"`
	RateLimit     struct {
		Requests int `env:"RATE_LIMIT_REQUESTS,default=100"`
		Duration int `env:"RATE_LIMIT_DURATION,default=60"`
	}
	Extras env.EnvSet
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxFileSize 返回以字节为单位的上传大小上限
func (c *Config) MaxFileSize() int64 {
	return c.MaxFileSizeMB << 20
}
