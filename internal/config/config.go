package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CacheNone     = "none"
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

type Config struct {
	SearchDepth    int
	RandomSeed     int64
	EngineParallel bool
	EngineVerbose  bool
	HumanFirst     bool

	CacheBackend string
	CacheSize    int
	CacheTTL     time.Duration

	// root_scores rows older than this are pruned
	CacheRetentionDays int

	RedisURL      string
	RedisPassword string

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
}

var AppConfig *Config

func LoadConfig() *Config {
	depth := GetEnvAsInt("SEARCH_DEPTH", 6)
	if depth < 1 {
		log.Printf("[CONFIG] SEARCH_DEPTH must be at least 1, got %d: using 1", depth)
		depth = 1
	}

	seed := int64(GetEnvAsInt("RANDOM_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	backend := strings.ToLower(GetEnv("CACHE_BACKEND", CacheMemory))
	switch backend {
	case CacheNone, CacheMemory, CacheRedis, CachePostgres:
	default:
		log.Printf("[CONFIG] Unknown CACHE_BACKEND %q, using %s", backend, CacheMemory)
		backend = CacheMemory
	}

	cacheSize := GetEnvAsInt("CACHE_SIZE", 4096)
	if cacheSize < 1 {
		cacheSize = 4096
	}

	retentionDays := GetEnvAsInt("CACHE_RETENTION_DAYS", 30)
	if retentionDays < 1 {
		log.Printf("[CONFIG] CACHE_RETENTION_DAYS must be at least 1, got %d: using 1", retentionDays)
		retentionDays = 1
	}

	AppConfig = &Config{
		SearchDepth:    depth,
		RandomSeed:     seed,
		EngineParallel: GetEnvAsBool("ENGINE_PARALLEL", false),
		EngineVerbose:  GetEnvAsBool("ENGINE_VERBOSE", false),
		HumanFirst:     GetEnvAsBool("HUMAN_FIRST", true),

		CacheBackend: backend,
		CacheSize:    cacheSize,
		CacheTTL:     time.Duration(GetEnvAsInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		CacheRetentionDays: retentionDays,

		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
