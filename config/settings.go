package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings carries every service-level knob read from the environment.
// Call godotenv.Load before FromEnv so a local .env is honored.
type Settings struct {
	// API
	Port       string
	CronSecret string

	// Redis history store
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Kafka render queue
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// S3 archive
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	// Content generation
	CohereAPIKey string
	CohereModel  string

	// YouTube upload
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleRefreshToken   string
	GoogleServiceAccount string

	// Scheduling
	EnableUpload     bool
	DailyUploadLimit int

	// Rendering
	OutputDir    string
	SoundsDir    string
	AmbientTrack string
	Voice        string
	Lightweight  bool
}

// FromEnv builds Settings from the process environment with sane defaults.
func FromEnv() Settings {
	return Settings{
		Port:       getEnvOrDefault("PORT", "8080"),
		CronSecret: os.Getenv("CRON_SECRET"),

		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   getEnvIntOrDefault("REDIS_DB", 0),

		KafkaBrokers: strings.Split(getEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"), ","),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC_RENDER_REQUESTS", "render-requests"),
		KafkaGroupID: getEnvOrDefault("KAFKA_CONSUMER_GROUP_ID", "codereel-renderers"),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),

		CohereAPIKey: os.Getenv("COHERE_API_KEY"),
		CohereModel:  getEnvOrDefault("COHERE_MODEL", "command-r-plus"),

		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRefreshToken:   os.Getenv("GOOGLE_REFRESH_TOKEN"),
		GoogleServiceAccount: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),

		EnableUpload:     strings.EqualFold(getEnvOrDefault("ENABLE_UPLOAD", "false"), "true"),
		DailyUploadLimit: getEnvIntOrDefault("DAILY_UPLOAD_LIMIT", DefaultDailyUploadLimit),

		OutputDir:    getEnvOrDefault("OUTPUT_DIR", OutputDir),
		SoundsDir:    getEnvOrDefault("SOUNDS_DIR", SoundsDir),
		AmbientTrack: os.Getenv("AMBIENT_TRACK"),
		Voice:        getEnvOrDefault("SPEECH_VOICE", "en-US-ChristopherNeural"),
		Lightweight:  strings.EqualFold(getEnvOrDefault("LIGHTWEIGHT_MODE", "false"), "true"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
