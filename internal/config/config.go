package config

import "net/http/cookiejar"

type Config struct {
	Logger struct {
		Level       string   `json:"level"`
		Development bool     `json:"development"`
		OutputPaths []string `json:"output_paths"`
	} `json:"logger"`

	// Scraper 抓取流程本身的配置,与具体浏览器引擎无关
	Scraper struct {
		Engine string `json:"engine"`
		// 浏览器启动后先打开的页面,对应原来隐藏webview的初始地址
		StartUrl                    string `json:"start_url"`
		ProductSelector             string `json:"product_selector"`
		FallbackDescriptionSelector string `json:"fallback_description_selector"`
		WaitTimeoutSeconds          int    `json:"wait_timeout_seconds"`
		SettleMillis                int    `json:"settle_millis"`
	} `json:"scraper"`

	Rod struct {
		UserMode             bool   `json:"user_mode"`
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
		Leakless             bool   `json:"leakless"`
		Bin                  string `json:"bin"`
		Stealth              bool   `json:"stealth"`
	} `json:"rod"`

	Chromedp struct {
		LifeTime             int    `json:"life_time"`
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
	} `json:"chromedp"`

	Colly struct {
		AllowedDomains   []string           `json:"allowed_domains"`
		UserAgent        string             `json:"user_agent"`
		IgnoreRobotsTxt  bool               `json:"ignore_robots_txt"`
		RequestTimeout   int                `json:"request_timeout"`
		EnableCookieJar  bool               `json:"enable_cookie_jar"`
		CookieJarOptions *cookiejar.Options `json:"cookie_jar_options"`
		Headers          map[string]string  `json:"headers"`
	} `json:"colly"`
}

const (
	EngineChromedp = "chromedp"
	EngineRod      = "rod"
	EngineColly    = "colly"
)
