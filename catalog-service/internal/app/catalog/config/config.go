package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Catalog Service
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Kafka   KafkaConfig
	Log     LogConfig
	Catalog CatalogConfig
	CORS    CORSConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8081)
}

// MongoDBConfig - подключение к хранилищу категорий и товаров
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration // Таймаут подключения и ping
}

// KafkaConfig - события каталога (PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED, CATEGORY_CHANGED)
type KafkaConfig struct {
	Brokers []string // host:port, через запятую в KAFKA_BROKERS
	Topic   string
}

type LogConfig struct {
	Level        string
	LogstashAddr string // Пусто - только stdout
}

// CatalogConfig - параметры листингов и генерации slug
type CatalogConfig struct {
	SlugLocale        string
	CategoryPageLimit int // Размер страницы /categories/advanced по умолчанию
	ProductPageLimit  int // Размер страницы листингов товаров по умолчанию
	MaxPageLimit      int
}

type CORSConfig struct {
	AllowOrigins []string
}

// Load загружает конфигурацию из переменных окружения
// Файл .env подхватывается, если он есть в рабочей директории
func Load() (*Config, error) {
	_ = godotenv.Load()

	mongoTimeout, err := getEnvInt("MONGODB_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	categoryLimit, err := getEnvInt("CATALOG_CATEGORY_PAGE_LIMIT", 3)
	if err != nil {
		return nil, err
	}
	productLimit, err := getEnvInt("CATALOG_PRODUCT_PAGE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	maxLimit, err := getEnvInt("CATALOG_MAX_PAGE_LIMIT", 100)
	if err != nil {
		return nil, err
	}
	if categoryLimit < 1 || productLimit < 1 || maxLimit < 1 {
		return nil, fmt.Errorf("page limits must be positive")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "catalog_service"),
			Timeout:  time.Duration(mongoTimeout) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "catalog_events"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
		Catalog: CatalogConfig{
			SlugLocale:        getEnv("CATALOG_SLUG_LOCALE", "tr"),
			CategoryPageLimit: categoryLimit,
			ProductPageLimit:  productLimit,
			MaxPageLimit:      maxLimit,
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
