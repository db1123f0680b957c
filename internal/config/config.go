package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DBConfig 数据库配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// MQConfig 消息队列配置
type MQConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LLMConfig holds provider settings. API keys are environment-only, never
// written to yaml files.
type LLMConfig struct {
	OpenAIModel    string `yaml:"openai_model"`
	GeminiModel    string `yaml:"gemini_model"`
	GeminiBaseURL  string `yaml:"gemini_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	OpenAIKey string `yaml:"-"`
	GeminiKey string `yaml:"-"`
}

// DataConfig 种子数据文件位置
type DataConfig struct {
	MockInboxPath      string `yaml:"mock_inbox_path"`
	DefaultPromptsPath string `yaml:"default_prompts_path"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	MQ     MQConfig     `yaml:"mq"`
	Redis  RedisConfig  `yaml:"redis"`
	LLM    LLMConfig    `yaml:"llm"`
	Data   DataConfig   `yaml:"data"`
}

// Load reads config/base.yaml, overlays config/<env>.yaml when present, pulls
// in an optional .env file, then applies environment-variable overrides.
func Load() (*Config, error) {
	// .env 仅用于本地开发时携带 API key，缺失不算错误
	_ = godotenv.Load()

	configDir := getEnv("CONFIG_DIR", "config")
	env := getEnv("CONFIG_ENV", "local")

	cfg := &Config{}
	if err := loadYAMLFile(filepath.Join(configDir, "base.yaml"), cfg); err != nil {
		return nil, fmt.Errorf("failed to load base.yaml: %w", err)
	}

	if env != "" && env != "base" {
		envFile := filepath.Join(configDir, fmt.Sprintf("%s.yaml", env))
		if _, err := os.Stat(envFile); err == nil {
			if err := loadYAMLFile(envFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load %s.yaml: %w", env, err)
			}
		}
	}

	overrideDBFromEnv(&cfg.DB)
	overrideMQFromEnv(&cfg.MQ)
	overrideRedisFromEnv(&cfg.Redis)
	overrideServerFromEnv(&cfg.Server)
	overrideLLMFromEnv(&cfg.LLM)

	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 30
	}

	return cfg, nil
}

func loadYAMLFile(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// overrideDBFromEnv 从环境变量覆盖数据库配置
func overrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// overrideMQFromEnv 从环境变量覆盖MQ配置
func overrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}

// overrideRedisFromEnv 从环境变量覆盖Redis配置
func overrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// overrideServerFromEnv 从环境变量覆盖服务器配置
func overrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// overrideLLMFromEnv API key 只从环境读取
func overrideLLMFromEnv(cfg *LLMConfig) {
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAIModel = model
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
