// config предоставляет структуру конфигурации news-search-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env"      env:"ENV"      env-default:"local"`
	Timezone string        `yaml:"timezone" env:"TIMEZONE" env-default:"Asia/Seoul"`
	HTTP     HTTPConfig    `yaml:"http"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Naver    NaverConfig   `yaml:"naver"`
	Feed     FeedConfig    `yaml:"feed"`
	Google   GoogleConfig  `yaml:"google"`
	Slack    SlackConfig   `yaml:"slack"`
	Auth     AuthConfig    `yaml:"auth"`
	Search   SearchConfig  `yaml:"search"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// TimeoutConfig — таймауты сервиса.
//
// Особенности:
//   - Service — общий дедлайн одного HTTP-запроса;
//   - Upstream — таймаут HTTP-клиента для одного обращения к внешнему API.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service"  env:"SERVICE_TIMEOUT"  env-default:"30s"`
	Upstream time.Duration `yaml:"upstream" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
}

// NaverConfig — первичный источник новостей (Naver Open API).
//
// Особенности:
//   - ClientID/ClientSecret обязательны только для provider=primary;
//     их отсутствие — ошибка конфигурации, фиксируемая до первого запроса;
//   - PageSize ≤ 100, MaxPages ≤ 5 — ограничения самого API;
//   - PerKeyword — жёсткий потолок выдачи на одно ключевое слово.
type NaverConfig struct {
	ClientID     string `yaml:"client_id"     env:"NAVER_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"NAVER_CLIENT_SECRET"`
	BaseURL      string `yaml:"base_url"      env:"NAVER_BASE_URL"  env-default:"https://openapi.naver.com"`
	PageSize     int    `yaml:"page_size"     env:"NAVER_PAGE_SIZE" env-default:"100"`
	MaxPages     int    `yaml:"max_pages"     env:"NAVER_MAX_PAGES" env-default:"5"`
	PerKeyword   int    `yaml:"per_keyword"   env:"NAVER_PER_KEYWORD" env-default:"30"`
}

// Configured сообщает, заданы ли учётные данные первичного источника.
func (n NaverConfig) Configured() bool {
	return n.ClientID != "" && n.ClientSecret != ""
}

// FeedConfig — вторичный источник (публичная новостная лента Google News RSS).
type FeedConfig struct {
	BaseURL string `yaml:"base_url" env:"FEED_BASE_URL" env-default:"https://news.google.com"`
	Lang    string `yaml:"lang"     env:"FEED_LANG"     env-default:"ko"`
	Country string `yaml:"country"  env:"FEED_COUNTRY"  env-default:"KR"`
	// Limit — мягкий потолок на ключевое слово; расширяем, но не выше MaxLimit.
	Limit    int `yaml:"limit"     env:"FEED_LIMIT"     env-default:"50"`
	MaxLimit int `yaml:"max_limit" env:"FEED_MAX_LIMIT" env-default:"100"`
}

// GoogleConfig — адаптер веб-поиска (Google Custom Search JSON API).
//
// Особенности:
//   - allow-list институциональных доменов настраивается на стороне
//     поискового движка (CX), не в сервисе;
//   - Endpoint переопределяет базовый URL API (используется в тестах).
type GoogleConfig struct {
	APIKey   string `yaml:"api_key"  env:"GOOGLE_API_KEY"`
	CX       string `yaml:"cx"       env:"GOOGLE_CSE_ID"`
	Endpoint string `yaml:"endpoint" env:"GOOGLE_CSE_ENDPOINT"`
}

// Configured сообщает, заданы ли учётные данные веб-поиска.
func (g GoogleConfig) Configured() bool {
	return g.APIKey != "" && g.CX != ""
}

// SlackConfig — исходящий webhook для уведомлений.
// Пустой URL выключает отправку (no-op, не ошибка).
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" env:"SLACK_WEBHOOK_URL"`
}

// AuthConfig — необязательный шлагбаум на транспортной границе.
//
// Особенности:
//   - Token — общий секрет (X-Access-Token или Bearer);
//   - BasicUser/BasicPass — пара basic-auth;
//   - если не задано ничего, доступ открыт.
type AuthConfig struct {
	Token     string `yaml:"token"      env:"ACCESS_TOKEN"`
	BasicUser string `yaml:"basic_user" env:"BASIC_AUTH_USER"`
	BasicPass string `yaml:"basic_pass" env:"BASIC_AUTH_PASS"`
}

// Enabled сообщает, включён ли шлагбаум.
func (a AuthConfig) Enabled() bool {
	return a.Token != "" || (a.BasicUser != "" && a.BasicPass != "")
}

// SearchConfig — настраиваемые параметры пайплайна поиска.
//
// Особенности:
//   - TitleWeight строго больше SummaryWeight (вхождение в заголовок дороже);
//   - TopN — размер выдачи на ключевое слово после фильтра релевантности;
//   - ResearchDefault/ResearchMax — границы max_results для веб-поиска;
//   - MaxConcurrent — потолок одновременных обращений к источнику
//     в рамках одного запроса.
type SearchConfig struct {
	TopN            int `yaml:"top_n"            env:"SEARCH_TOP_N"          env-default:"10"`
	TitleWeight     int `yaml:"title_weight"     env:"SEARCH_TITLE_WEIGHT"   env-default:"2"`
	SummaryWeight   int `yaml:"summary_weight"   env:"SEARCH_SUMMARY_WEIGHT" env-default:"1"`
	ExtractTopN     int `yaml:"extract_top_n"    env:"EXTRACT_TOP_N"         env-default:"5"`
	ResearchDefault int `yaml:"research_default" env:"RESEARCH_DEFAULT"      env-default:"10"`
	ResearchMax     int `yaml:"research_max"     env:"RESEARCH_MAX"          env-default:"30"`
	MaxConcurrent   int `yaml:"max_concurrent"   env:"SEARCH_MAX_CONCURRENT" env-default:"4"`
}

// Location возвращает часовой пояс сервиса.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию согласно приоритету источников.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return validated(&cfg)
	}

	// 1) явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated(&cfg)
}

// validated проверяет инварианты после загрузки.
func validated(cfg *Config) (*Config, error) {
	if cfg.Search.TitleWeight <= cfg.Search.SummaryWeight {
		return nil, fmt.Errorf("search.title_weight (%d) must exceed search.summary_weight (%d)",
			cfg.Search.TitleWeight, cfg.Search.SummaryWeight)
	}

	if cfg.Search.SummaryWeight <= 0 {
		return nil, fmt.Errorf("search.summary_weight must be positive")
	}

	if cfg.Search.TopN <= 0 {
		return nil, fmt.Errorf("search.top_n must be positive")
	}

	if cfg.Search.ResearchMax <= 0 || cfg.Search.ResearchDefault <= 0 ||
		cfg.Search.ResearchDefault > cfg.Search.ResearchMax {
		return nil, fmt.Errorf("search.research_default must be in [1, research_max]")
	}

	if cfg.Naver.PageSize <= 0 || cfg.Naver.PageSize > 100 {
		return nil, fmt.Errorf("naver.page_size must be in [1,100]")
	}

	if cfg.Naver.MaxPages <= 0 || cfg.Naver.MaxPages > 5 {
		return nil, fmt.Errorf("naver.max_pages must be in [1,5]")
	}

	if cfg.Naver.PerKeyword <= 0 {
		return nil, fmt.Errorf("naver.per_keyword must be positive")
	}

	if cfg.Feed.Limit <= 0 || cfg.Feed.MaxLimit <= 0 {
		return nil, fmt.Errorf("feed limits must be positive")
	}

	// Мягкий потолок ленты не превышает жёсткий.
	if cfg.Feed.Limit > cfg.Feed.MaxLimit {
		cfg.Feed.Limit = cfg.Feed.MaxLimit
	}

	if cfg.Search.MaxConcurrent <= 0 {
		cfg.Search.MaxConcurrent = 1
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}
