package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Demo admin credential. Not a real account system.
	AdminEmail    string
	AdminPassword string
	AdminName     string
	SessionTTL    time.Duration

	CacheTTL       time.Duration
	RedisURL       string
	AllowedOrigins []string
	PublicBaseURL  string

	// Blob storage. S3 is used when S3Bucket is set, the local directory
	// otherwise.
	MediaDir     string
	MediaURLPath string
	S3Bucket     string
	S3Region     string
	S3PublicURL  string

	SESRegion string
	MailFrom  string
	NotifyTo  string

	// Static AWS keys. When empty the SDK's default credential chain is used.
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// fileConfig mirrors Config for the optional YAML file.
type fileConfig struct {
	Port           int      `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	DatabaseType   string   `yaml:"database_type"`
	AdminEmail     string   `yaml:"admin_email"`
	AdminPassword  string   `yaml:"admin_password"`
	AdminName      string   `yaml:"admin_name"`
	SessionTTL     string   `yaml:"session_ttl"`
	CacheTTL       string   `yaml:"cache_ttl"`
	RedisURL       string   `yaml:"redis_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PublicBaseURL  string   `yaml:"public_base_url"`
	Media          struct {
		Dir       string `yaml:"dir"`
		URLPath   string `yaml:"url_path"`
		S3Bucket  string `yaml:"s3_bucket"`
		S3Region  string `yaml:"s3_region"`
		PublicURL string `yaml:"s3_public_url"`
	} `yaml:"media"`
	Mail struct {
		SESRegion string `yaml:"ses_region"`
		From      string `yaml:"from"`
		NotifyTo  string `yaml:"notify_to"`
	} `yaml:"mail"`
	AWS struct {
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
	} `yaml:"aws"`
}

// ParseFlags reads configuration from CLI flags, then environment
// variables (a .env file is loaded first when present), then the optional
// YAML file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var (
		cfg                        Config
		configFile                 string
		sessionTTL, cacheTTL, orig string
	)

	fset := flag.NewFlagSet("golden-sleek-vision", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fset.StringVar(&configFile, "c", "", "YAML config file")
	fset.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for sessions and settings fan-out")
	fset.StringVar(&orig, "origins", "", "Comma-separated CORS origins")

	// Demo credential (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.AdminEmail, "admin-email", "", "Admin login email")
	fset.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin login password (prefer env)")
	fset.StringVar(&sessionTTL, "session-ttl", "", "Admin session lifetime")
	fset.StringVar(&cacheTTL, "cache-ttl", "", "Public settings cache lifetime")

	fset.StringVar(&cfg.MediaDir, "media-dir", "", "Local upload directory")
	fset.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket for uploads")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing .env is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	var file fileConfig
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseURL = pick(cfg.DatabaseURL, "DATABASE_URL", file.DatabaseURL, "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = pick(cfg.DatabaseType, "DATABASE_TYPE", file.DatabaseType, "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}

	cfg.AdminEmail = pick(cfg.AdminEmail, "ADMIN_EMAIL", file.AdminEmail, "admin@example.com")
	cfg.AdminPassword = pick(cfg.AdminPassword, "ADMIN_PASSWORD", file.AdminPassword, "admin123")
	cfg.AdminName = pick("", "ADMIN_NAME", file.AdminName, "Admin User")

	var err error
	if cfg.SessionTTL, err = duration(pick(sessionTTL, "SESSION_TTL", file.SessionTTL, "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid session TTL: %w", err)
	}
	if cfg.CacheTTL, err = duration(pick(cacheTTL, "CACHE_TTL", file.CacheTTL, "5m")); err != nil {
		return Config{}, fmt.Errorf("invalid cache TTL: %w", err)
	}

	cfg.RedisURL = pick(cfg.RedisURL, "REDIS_URL", file.RedisURL, "")
	cfg.PublicBaseURL = strings.TrimRight(pick("", "PUBLIC_BASE_URL", file.PublicBaseURL,
		fmt.Sprintf("http://localhost:%d", cfg.Port)), "/")

	if origins := pick(orig, "ALLOWED_ORIGINS", "", ""); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else if len(file.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173", cfg.PublicBaseURL}
	}

	cfg.MediaDir = pick(cfg.MediaDir, "MEDIA_DIR", file.Media.Dir, "uploads")
	cfg.MediaURLPath = pick("", "MEDIA_URL_PATH", file.Media.URLPath, "/media/")
	cfg.S3Bucket = pick(cfg.S3Bucket, "S3_BUCKET", file.Media.S3Bucket, "")
	cfg.S3Region = pick("", "AWS_REGION", file.Media.S3Region, "us-east-1")
	cfg.S3PublicURL = pick("", "S3_PUBLIC_URL", file.Media.PublicURL, "")

	cfg.SESRegion = pick("", "SES_REGION", file.Mail.SESRegion, "")
	cfg.MailFrom = pick("", "MAIL_FROM", file.Mail.From, "")
	cfg.NotifyTo = pick("", "NOTIFY_TO", file.Mail.NotifyTo, "")

	cfg.AWSAccessKeyID = pick("", "AWS_ACCESS_KEY_ID", file.AWS.AccessKeyID, "")
	cfg.AWSSecretAccessKey = pick("", "AWS_SECRET_ACCESS_KEY", file.AWS.SecretAccessKey, "")

	return cfg, nil
}

// pick returns the first non-empty of the flag value, the environment
// variable, the file value and the default.
func pick(flagVal, envKey, fileVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func duration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
