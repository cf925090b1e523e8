package constants

// Application Information
const (
	AppName    = "Accounts Service"
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
	DefaultPort        = "3000"
	DefaultEnvironment = EnvDevelopment
)

// Redis Key Prefixes
const (
	CacheKeyPrefix  = "accounts:"
	CacheKeyUser    = CacheKeyPrefix + "user:"
	CacheKeyRevoked = CacheKeyPrefix + "revoked:"
)

// Connection record outcomes
const (
	ConnectionStatusSuccess = "success"
	ConnectionStatusFailed  = "failed"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
