package constants

// Application Information
const (
	AppName    = "Jobboard Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix    = "jobboard:"
	CacheKeyJob       = CacheKeyPrefix + "job:"
	CacheKeyCompany   = CacheKeyPrefix + "company:"
	CacheKeyRateLimit = CacheKeyPrefix + "ratelimit:"
)

// Role names
const (
	RoleAdmin = "ADMIN"
	RoleHR    = "HR"
	RoleUser  = "USER"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
