// Package config holds the flat key/value configuration for lanchonete.
//
// Values are resolved in this order, later sources winning:
// built-in defaults, config/app.json, .env, then the process environment.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAppEnv      = "local"
	defaultAppPort     = "8080"
	defaultGRPCPort    = "9090"
	defaultStoreDriver = "disk"
	defaultStorePath   = "storage/securestore"
	defaultRedisAddr   = "localhost:6379"
	defaultDBDriver    = "sqlite"
	defaultSQLiteDSN   = "lanchonete.db"
	defaultMongoURI    = "mongodb://localhost:27017"
	defaultMongoDB     = "lanchonete"
	defaultJWTSecret   = "change-me-in-production"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu        sync.RWMutex
	values    = defaultValues()
	overrides = map[string]string{}
)

// Load reads config/app.json and .env once. Missing files are not an error.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFrom("config/app.json", ".env")
	})
	return loadErr
}

// Set overrides a single key at runtime. Intended for tests and CLI flags.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	overrides[strings.ToUpper(key)] = value
}

// Get reads any config key by name with a fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

func AppEnv() string   { return Get("APP_ENV", defaultAppEnv) }
func AppPort() string  { return Get("APP_PORT", defaultAppPort) }
func GRPCPort() string { return Get("GRPC_PORT", defaultGRPCPort) }

// AppKey is the secret used to encrypt values at rest.
// It falls back to JWT_SECRET so a single secret is enough for local runs.
func AppKey() string { return Get("APP_KEY", JWTSecret()) }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }

// JWTTTL is how long login tokens stay valid (default 24h).
func JWTTTL() time.Duration { return duration(Get("JWT_TTL", ""), 24*time.Hour) }

// MaxBodyBytes caps request bodies (default 1 MB).
func MaxBodyBytes() int64 {
	n, err := strconv.ParseInt(Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

// SessionSecure marks the session cookie Secure. Defaults to IsProduction.
func SessionSecure() bool {
	return boolValue(Get("SESSION_SECURE", strconv.FormatBool(IsProduction())))
}

// SessionTTL is how long an idle session keeps its cart (default 2h).
func SessionTTL() time.Duration { return duration(Get("SESSION_TTL", ""), 2*time.Hour) }

// CORSOrigins lists the allowed browser origins, comma separated.
func CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(Get("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// RateLimit is the number of checkout and login requests a client may make
// per minute (default 30).
func RateLimit() int {
	n, err := strconv.Atoi(Get("RATE_LIMIT", ""))
	if err != nil || n <= 0 {
		return 30
	}
	return n
}

// ShutdownTimeout bounds graceful shutdown (default 10s).
func ShutdownTimeout() time.Duration { return duration(Get("SHUTDOWN_TIMEOUT", ""), 10*time.Second) }

func IsProduction() bool {
	switch AppEnv() {
	case "production", "prod":
		return true
	}
	return false
}

// ── Store ────────────────────────────────────────────────────────────────────

// StoreDriver selects the key-value backend for orders and the account.
func StoreDriver() string {
	driver := strings.ToLower(Get("STORE_DRIVER", defaultStoreDriver))
	switch driver {
	case "memory", "disk", "redis", "sql", "mongo", "s3":
		return driver
	default:
		return defaultStoreDriver
	}
}

// StoreEncrypt reports whether stored values are sealed with AppKey.
func StoreEncrypt() bool { return boolValue(Get("STORE_ENCRYPT", "true")) }

func StorePath() string { return Get("STORE_PATH", defaultStorePath) }

func RedisAddr() string     { return Get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return Get("REDIS_PASSWORD", "") }
func RedisPrefix() string   { return Get("REDIS_PREFIX", "lanchonete:") }

func DatabaseDriver() string {
	driver := strings.ToLower(Get("DB_DRIVER", defaultDBDriver))
	switch driver {
	case "sqlite", "postgres", "mysql", "sqlserver":
		return driver
	default:
		return defaultDBDriver
	}
}

func DatabaseDSN() string {
	if dsn := Get("DATABASE_DSN", ""); dsn != "" {
		return dsn
	}
	if DatabaseDriver() == "sqlite" {
		return defaultSQLiteDSN
	}
	return ""
}

func MongoURI() string      { return Get("MONGO_URI", defaultMongoURI) }
func MongoDatabase() string { return Get("MONGO_DATABASE", defaultMongoDB) }

// LogMongoURI enables the MongoDB log sink when set.
func LogMongoURI() string        { return Get("LOG_MONGO_URI", "") }
func LogMongoCollection() string { return Get("LOG_MONGO_COLLECTION", "logs") }
func LogMongoLevel() string      { return Get("LOG_MONGO_LEVEL", "info") }

func S3Bucket() string   { return Get("S3_BUCKET", "") }
func S3Region() string   { return Get("S3_REGION", "us-east-1") }
func S3Key() string      { return Get("S3_KEY", "") }
func S3Secret() string   { return Get("S3_SECRET", "") }
func S3Endpoint() string { return Get("S3_ENDPOINT", "") }
func S3Prefix() string   { return Get("S3_PREFIX", "lanchonete/") }

// ── Loading ──────────────────────────────────────────────────────────────────

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":      defaultAppEnv,
		"APP_PORT":     defaultAppPort,
		"GRPC_PORT":    defaultGRPCPort,
		"STORE_DRIVER": defaultStoreDriver,
		"STORE_PATH":   defaultStorePath,
		"REDIS_ADDR":   defaultRedisAddr,
		"DB_DRIVER":    defaultDBDriver,
		"JWT_SECRET":   defaultJWTSecret,
	}
}

func loadFrom(jsonPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSON(jsonPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := mergeDotEnv(envPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}
	for key := range knownKeys {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

var knownKeys = map[string]struct{}{
	"APP_ENV": {}, "APP_PORT": {}, "GRPC_PORT": {}, "APP_KEY": {}, "JWT_SECRET": {},
	"STORE_DRIVER": {}, "STORE_ENCRYPT": {}, "STORE_PATH": {},
	"REDIS_ADDR": {}, "REDIS_PASSWORD": {}, "REDIS_PREFIX": {},
	"DB_DRIVER": {}, "DATABASE_DSN": {},
	"MONGO_URI": {}, "MONGO_DATABASE": {},
	"LOG_MONGO_URI": {}, "LOG_MONGO_COLLECTION": {}, "LOG_MONGO_LEVEL": {},
	"S3_BUCKET": {}, "S3_REGION": {}, "S3_KEY": {}, "S3_SECRET": {}, "S3_ENDPOINT": {}, "S3_PREFIX": {},
	"JWT_TTL": {}, "MAX_BODY_BYTES": {}, "SESSION_SECURE": {}, "SHUTDOWN_TIMEOUT": {},
	"SESSION_TTL": {}, "CORS_ORIGINS": {}, "RATE_LIMIT": {},
}

func mergeJSON(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool:
			out[k] = strconv.FormatBool(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(key, "export ")))
		if !ok || key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	key = strings.ToUpper(key)
	if value, ok := overrides[key]; ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
		return fallback
	}
	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}
	return fallback
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func boolValue(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
