package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo 服務資訊 from .env
type EnvInfo struct {
	// service name
	HighlightService string
	// service yaml path
	HighlightServiceYAMLPath string
	// service log path
	HighlightServiceLogPath string
}

var (
	envConfig EnvInfo
	once      sync.Once
	env       string
)

// Env 讀取 .env 一次並回傳服務資訊
func Env() EnvInfo {
	once.Do(func() {
		path, err := GetPath(".env", 5)
		if err != nil {
			log.Printf("Warning: Could not get .env path: %v", err)
		} else if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: Could not load .env file: %v", err)
		}

		env = os.Getenv("ENV")

		envConfig = EnvInfo{
			HighlightService:         getenv("HIGHLIGHT_SERVICE", "highlight_service"),
			HighlightServiceYAMLPath: os.Getenv("HIGHLIGHT_SERVICE_YAML"),
			HighlightServiceLogPath:  os.Getenv("HIGHLIGHT_SERVICE_LOG"),
		}
	})

	return envConfig
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return env == "local"
}

// LoadConfig 加載配置, 找不到 yaml 時使用預設值與環境變數
func LoadConfig[T any](serviceName string, configPath string, defaults map[string]interface{}) (T, error) {
	var cfg T

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 自動讀取環境變數
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigName(serviceName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configPath)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("loading config file: %w", err)
			}
		} else {
			rawConfig, err := os.ReadFile(v.ConfigFileUsed())
			if err != nil {
				return cfg, fmt.Errorf("reading raw config file: %w", err)
			}

			// 替換 ${} 占位符為環境變數的值
			expandedConfig := os.ExpandEnv(string(rawConfig))
			if err := v.ReadConfig(bytes.NewBufferString(expandedConfig)); err != nil {
				return cfg, fmt.Errorf("reading expanded config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadHighlightService 加載 highlight service 配置
func LoadHighlightService(e EnvInfo) (HighlightService, error) {
	return LoadConfig[HighlightService](e.HighlightService, e.HighlightServiceYAMLPath, HighlightServiceDefaults())
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + " can't find path")
}
