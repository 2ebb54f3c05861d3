package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	CacheRedis  = "redis"
	CacheMemory = "memory"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Settings holds everything read from the environment at startup.
type Settings struct {
	AppPort string
	Debug   bool

	DBDriver string
	DBDSN    string

	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PostsPerPage int

	JWTSecret     string
	TokenLifetime time.Duration
	CookieName    string

	StorageBackend string
	MediaRoot      string
	MediaURL       string
	S3             S3Settings
}

type S3Settings struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	Bucket         string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
}

// Init loads .env (if present) and reads the settings from the environment.
func Init() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv reads the settings without touching .env files.
func FromEnv() (*Settings, error) {
	s := &Settings{
		AppPort:        getenv("APP_PORT", "8000"),
		Debug:          getbool("APP_DEBUG", false),
		DBDriver:       getenv("DB_DRIVER", DriverMySQL),
		DBDSN:          os.Getenv("DB_DSN"),
		CacheBackend:   getenv("CACHE_BACKEND", CacheRedis),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CookieName:     getenv("AUTH_COOKIE", "yatube_token"),
		StorageBackend: getenv("STORAGE_BACKEND", StorageLocal),
		MediaRoot:      getenv("MEDIA_ROOT", "media"),
		MediaURL:       getenv("MEDIA_URL", "/media/"),
		S3: S3Settings{
			Region:         os.Getenv("S3_REGION"),
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         os.Getenv("S3_BUCKET"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			SSLDisabled:    getbool("S3_SSL_DISABLED", false),
		},
	}

	var err error
	if s.RedisDB, err = getint("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if s.PostsPerPage, err = getint("POSTS_PER_PAGE", 10); err != nil {
		return nil, err
	}
	if s.PostsPerPage <= 0 {
		return nil, errors.New("POSTS_PER_PAGE must be positive")
	}
	if s.CacheTTL, err = getduration("CACHE_TTL", 20*time.Second); err != nil {
		return nil, err
	}
	if s.TokenLifetime, err = getduration("TOKEN_LIFETIME", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	switch s.DBDriver {
	case DriverMySQL:
		if s.DBDSN == "" {
			return errors.New("DB_DSN is not set")
		}
	case DriverSQLite:
		if s.DBDSN == "" {
			s.DBDSN = "yatube.db"
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", s.DBDriver)
	}

	switch s.CacheBackend {
	case CacheRedis:
		if s.RedisAddr == "" {
			return errors.New("REDIS_ADDR is not set")
		}
	case CacheMemory:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", s.CacheBackend)
	}

	switch s.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if s.S3.Bucket == "" {
			return errors.New("S3_BUCKET is not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", s.StorageBackend)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getbool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getduration accepts Go durations ("20s") or a bare number of seconds.
func getduration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
