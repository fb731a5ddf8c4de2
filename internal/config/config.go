package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DBDriverMySQL  = "mysql"
	DBDriverSQLite = "sqlite"

	StorageDriverBunny = "bunny"
	StorageDriverMinio = "minio"
)

type Settings struct {
	DBDriver        string
	DBDSN           string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	StorageDriver    string
	StorageEndpoint  string
	StorageZone      string
	StorageAPIKey    string
	StorageAccessKey string
	StorageUseSSL    bool
	CDNBaseURL       string

	ImageQuality int
	ProxyTimeout time.Duration

	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	JWTSecret      string
	MetricsEnabled bool
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	v.SetDefault("DB_DRIVER", DBDriverMySQL)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("STORAGE_DRIVER", StorageDriverBunny)
	v.SetDefault("IMAGE_QUALITY", 80)
	v.SetDefault("PROXY_TIMEOUT", 30)
	v.SetDefault("CATALOG_CACHE_TTL", 300)
	v.SetDefault("METRICS_ENABLED", true)

	if !v.IsSet("DB_DSN") {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if !v.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	dbDriver := strings.ToLower(v.GetString("DB_DRIVER"))
	if dbDriver != DBDriverMySQL && dbDriver != DBDriverSQLite {
		return nil, fmt.Errorf("DB_DRIVER %q is not supported", dbDriver)
	}

	storageDriver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	endpoint := v.GetString("STORAGE_ENDPOINT")
	switch storageDriver {
	case StorageDriverBunny:
		if endpoint == "" {
			endpoint = "https://storage.bunnycdn.com"
		}
	case StorageDriverMinio:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER %q is not supported", storageDriver)
	}

	quality := v.GetInt("IMAGE_QUALITY")
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("IMAGE_QUALITY must be between 1 and 100")
	}

	return &Settings{
		DBDriver:        dbDriver,
		DBDSN:           v.GetString("DB_DSN"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      v.GetInt("SERVER_PORT"),

		StorageDriver:    storageDriver,
		StorageEndpoint:  endpoint,
		StorageZone:      v.GetString("STORAGE_ZONE"),
		StorageAPIKey:    v.GetString("STORAGE_API_KEY"),
		StorageAccessKey: v.GetString("STORAGE_ACCESS_KEY"),
		StorageUseSSL:    v.GetBool("STORAGE_USE_SSL"),
		CDNBaseURL:       strings.TrimRight(v.GetString("STORAGE_CDN_BASE_URL"), "/"),

		ImageQuality: quality,
		ProxyTimeout: time.Duration(v.GetInt("PROXY_TIMEOUT")) * time.Second,

		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		CatalogCacheTTL: time.Duration(v.GetInt("CATALOG_CACHE_TTL")) * time.Second,

		JWTSecret:      v.GetString("JWT_SECRET"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}, nil
}

// StorageConfigured reports whether uploads can be attempted at all.
func (s *Settings) StorageConfigured() bool {
	return s.StorageZone != "" && s.StorageAPIKey != "" && s.CDNBaseURL != ""
}
