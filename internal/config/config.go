package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Storage struct {
	// Backend is "local" or "minio".
	Backend      string
	UploadsDir   string
	FeedCacheDir string
}

type Images struct {
	MaxDimension     int
	OptimizedQuality int
	ThumbnailSize    int
	ThumbnailQuality int
}

type Instagram struct {
	APIToken       string
	BaseURL        string
	ActorID        string
	Username       string
	BatchSize      int
	StaleAfter     time.Duration
	RequestTimeout time.Duration
	MirrorImages   bool
}

type Log struct {
	Level  string
	Format string
}

type RateLimit struct {
	LoginRequests   int
	ContactRequests int
	Window          time.Duration
}

type Config struct {
	AppEnv              string
	ServerPort          int
	DB                  DB
	MinIO               MinIO
	Storage             Storage
	Images              Images
	Instagram           Instagram
	Log                 Log
	RateLimit           RateLimit
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	AdminEmail          string
	EmailConfigKey      string
	MaxUploadSize       int64
	CORSAllowedOrigins  []string
	ShutdownTimeout     time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "boutique"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadStorage() Storage {
	return Storage{
		Backend:      strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
		UploadsDir:   getEnv("UPLOADS_DIR", "uploads"),
		FeedCacheDir: getEnv("INSTAGRAM_CACHE_PREFIX", "instagram-cache"),
	}
}

func LoadImages() Images {
	return Images{
		MaxDimension:     getEnvAsInt("IMAGE_MAX_DIMENSION", 1200),
		OptimizedQuality: getEnvAsInt("IMAGE_OPTIMIZED_QUALITY", 80),
		ThumbnailSize:    getEnvAsInt("IMAGE_THUMBNAIL_SIZE", 300),
		ThumbnailQuality: getEnvAsInt("IMAGE_THUMBNAIL_QUALITY", 70),
	}
}

func LoadInstagram() Instagram {
	return Instagram{
		APIToken:       getEnv("APIFY_API_TOKEN", ""),
		BaseURL:        getEnv("APIFY_BASE_URL", "https://api.apify.com"),
		ActorID:        getEnv("APIFY_ACTOR_ID", "nH2AHrwxeTRJoN5hX"),
		Username:       getEnv("INSTAGRAM_USERNAME", "taxi.amore"),
		BatchSize:      getEnvAsInt("INSTAGRAM_BATCH_SIZE", 12),
		StaleAfter:     parseDuration(getEnv("INSTAGRAM_STALE_AFTER", "1h"), time.Hour),
		RequestTimeout: parseDuration(getEnv("INSTAGRAM_REQUEST_TIMEOUT", "90s"), 90*time.Second),
		MirrorImages:   getEnvBool("INSTAGRAM_MIRROR_IMAGES", true),
	}
}

func LoadLog() Log {
	return Log{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func LoadRateLimit() RateLimit {
	return RateLimit{
		LoginRequests:   getEnvAsInt("RATE_LIMIT_LOGIN", 10),
		ContactRequests: getEnvAsInt("RATE_LIMIT_CONTACT", 5),
		Window:          parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"), time.Minute),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	jwtSecret := getEnv("JWT_SECRET_KEY", "")

	return &Config{
		AppEnv:              getEnv("APP_ENV", "production"),
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Storage:             LoadStorage(),
		Images:              LoadImages(),
		Instagram:           LoadInstagram(),
		Log:                 LoadLog(),
		RateLimit:           LoadRateLimit(),
		JWTSecretKey:        jwtSecret,
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "24h"), 24*time.Hour),
		AdminEmail:          getEnv("ADMIN_EMAIL", "admin@example.com"),
		EmailConfigKey:      getEnv("EMAIL_CONFIG_KEY", jwtSecret),
		MaxUploadSize:       parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:     parseDuration(getEnv("SHUTDOWN_TIMEOUT", "15s"), 15*time.Second),
	}
}
