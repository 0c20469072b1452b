package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	SiteURL string `mapstructure:"site_url"` // 支付成功/取消页跳转的站点地址
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Issuer          string        `mapstructure:"issuer"`
}

type AdminConfig struct {
	// 注册时命中该邮箱的账号直接授予 ADMIN 角色
	Email string `mapstructure:"email"`
}

type PaymentConfig struct {
	// 外部支付处理器的 HTTP 端点和密钥（不绑定具体厂商 SDK）
	Endpoint      string `mapstructure:"endpoint"`
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type UploadConfig struct {
	Dir          string `mapstructure:"dir"`
	BaseURL      string `mapstructure:"base_url"`
	MaxFileSize  int64  `mapstructure:"max_file_size"`  // 单文件字节上限
	MaxFileCount int    `mapstructure:"max_file_count"` // 单次上传文件数上限
}

// ==================== 加载 ====================

// Load 读取配置
// 优先级：环境变量 > config.yaml > 默认值
// 环境变量命名：LACELINK_SERVER_PORT、LACELINK_DATABASE_DSN ...
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("LACELINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件可选，没有就全走环境变量和默认值
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.site_url", "http://localhost:3000")

	v.SetDefault("database.dsn",
		"host=localhost user=lacelink password=lacelink dbname=lacelink port=5432 sslmode=disable")

	v.SetDefault("jwt.secret", "lacelink-secret-key-change-in-production")
	v.SetDefault("jwt.access_token_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "lacelink")

	v.SetDefault("admin.email", "")

	v.SetDefault("payment.endpoint", "")
	v.SetDefault("payment.api_key", "")
	v.SetDefault("payment.webhook_secret", "")

	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.base_url", "/uploads")
	v.SetDefault("upload.max_file_size", int64(8*1024*1024)) // 8MB，对齐前端上传限制
	v.SetDefault("upload.max_file_count", 6)
}
