package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Scoring   ScoringConfig
	WebSocket WebSocketConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
	// Mode: режим gin ("debug", "release", "test")
	Mode string
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MigrationsPath: путь к папке с SQL-миграциями
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// CacheConfig содержит настройки кеширования представлений и статистики
type CacheConfig struct {
	Enabled bool
	Prefix  string
	// ViewsTTLSec: время жизни кеша списка финализированных игр
	ViewsTTLSec int `mapstructure:"views_ttl_sec"`
	// StatsTTLSec: время жизни кеша карьерной статистики игрока
	StatsTTLSec int `mapstructure:"stats_ttl_sec"`
}

// ScoringConfig содержит настройки подсчёта очков
type ScoringConfig struct {
	// FanOutLimit ограничивает число одновременных запросов к БД при веерной загрузке
	FanOutLimit int `mapstructure:"fan_out_limit"`
}

// WebSocketConfig содержит настройки табло в реальном времени
type WebSocketConfig struct {
	Enabled          bool
	ClientSendBuffer int `mapstructure:"client_send_buffer"`
	BroadcastBuffer  int `mapstructure:"broadcast_buffer"`

	// RelayChannel: канал Redis для рассылки событий между экземплярами (пусто = только локально)
	RelayChannel string `mapstructure:"relay_channel"`
}

// RateLimitConfig содержит настройки ограничения частоты записи
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int `mapstructure:"max_requests"`
	WindowSec   int `mapstructure:"window_sec"`
}

// CORSConfig содержит список разрешённых origin (используется и для WebSocket)
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level  string
	Format string // "text" или "json"
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ViewsTTL возвращает TTL кеша представлений
func (c CacheConfig) ViewsTTL() time.Duration {
	return time.Duration(c.ViewsTTLSec) * time.Second
}

// StatsTTL возвращает TTL кеша статистики
func (c CacheConfig) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLSec) * time.Second
}

// Window возвращает окно ограничения частоты
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSec) * time.Second
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.mode", "debug")

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("cache.enabled", true)
	vip.SetDefault("cache.prefix", "scorekeeper")
	vip.SetDefault("cache.views_ttl_sec", 300)
	vip.SetDefault("cache.stats_ttl_sec", 120)

	vip.SetDefault("scoring.fan_out_limit", 8)

	vip.SetDefault("websocket.enabled", true)
	vip.SetDefault("websocket.client_send_buffer", 64)
	vip.SetDefault("websocket.broadcast_buffer", 256)
	vip.SetDefault("websocket.relay_channel", "scorekeeper:events")

	vip.SetDefault("rate_limit.enabled", true)
	vip.SetDefault("rate_limit.max_requests", 120)
	vip.SetDefault("rate_limit.window_sec", 60)

	vip.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "text")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string, logger *log.Logger) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, без глобального состояния

	setDefaults(vip)

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.mode", "GIN_MODE")

	vip.BindEnv("cache.enabled", "CACHE_ENABLED")
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("websocket.enabled", "WEBSOCKET_ENABLED")

	vip.BindEnv("log.level", "LOG_LEVEL")
	vip.BindEnv("log.format", "LOG_FORMAT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: тогда работают переменные окружения и значения по умолчанию
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				logger.Warn("config file not found, using env/defaults", "path", configPath)
			} else {
				logger.Warn("failed to read config file", "path", configPath, "error", err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logger.Debug("config loaded",
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.DBName,
		"redis_mode", cfg.Redis.Mode,
		"server_port", cfg.Server.Port,
		"cache_enabled", cfg.Cache.Enabled,
		"websocket_enabled", cfg.WebSocket.Enabled,
	)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Server.Mode == "release" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}
	if c.Scoring.FanOutLimit < 1 {
		return fmt.Errorf("scoring.fan_out_limit must be positive, got %d", c.Scoring.FanOutLimit)
	}
	return nil
}
