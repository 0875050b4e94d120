package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultStartUrl                    = "https://www.epicgames.com/"
	defaultProductSelector             = "#_schemaOrgMarkup-Product"
	defaultFallbackDescriptionSelector = `[data-testid="about-long-description"]`
	defaultWaitTimeoutSeconds          = 30
	defaultSettleMillis                = 500
	defaultChromedpLifeTime            = 3600
	defaultCollyRequestTimeout         = 30
)

func ParseConfig(byteConfig []byte) (*Config, error) {
	var cfg Config
	err := json.Unmarshal(byteConfig, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	// 浏览器用户数据目录统一转成绝对路径,避免工作目录变化后找不到
	if cfg.Chromedp.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Chromedp.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Chromedp.UserDataDir = absPath
	}
	if cfg.Rod.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Rod.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Rod.UserDataDir = absPath
	}
	return &cfg, nil
}

// LoadConfig 从文件读取配置,用于替换编译时嵌入的默认配置
func LoadConfig(path string) (*Config, error) {
	byteConfig, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return ParseConfig(byteConfig)
}

func (cfg *Config) setDefaults() {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Scraper.Engine == "" {
		cfg.Scraper.Engine = EngineChromedp
	}
	if cfg.Scraper.StartUrl == "" {
		cfg.Scraper.StartUrl = defaultStartUrl
	}
	if cfg.Scraper.ProductSelector == "" {
		cfg.Scraper.ProductSelector = defaultProductSelector
	}
	if cfg.Scraper.FallbackDescriptionSelector == "" {
		cfg.Scraper.FallbackDescriptionSelector = defaultFallbackDescriptionSelector
	}
	if cfg.Scraper.WaitTimeoutSeconds <= 0 {
		cfg.Scraper.WaitTimeoutSeconds = defaultWaitTimeoutSeconds
	}
	if cfg.Scraper.SettleMillis < 0 {
		cfg.Scraper.SettleMillis = defaultSettleMillis
	}
	if cfg.Chromedp.LifeTime <= 0 {
		cfg.Chromedp.LifeTime = defaultChromedpLifeTime
	}
	if cfg.Colly.RequestTimeout <= 0 {
		cfg.Colly.RequestTimeout = defaultCollyRequestTimeout
	}
}

func (cfg *Config) validate() error {
	switch cfg.Scraper.Engine {
	case EngineChromedp, EngineRod, EngineColly:
		return nil
	default:
		return fmt.Errorf("未知的抓取引擎: %q", cfg.Scraper.Engine)
	}
}
