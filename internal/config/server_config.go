package config

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

// ModuleName is the service identifier used in logs and the CLI.
const ModuleName = "timelock-admin"

// build arguments, overridden via -ldflags at compile time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, runtime.Version())
}

type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type AuthServer struct {
	// AdminAPIKey guards all /api/v1 routes. Never logged.
	AdminAPIKey string
}

type ChainServer struct {
	// RPCURLs are tried in order with failover
	RPCURLs []string
	// TimelockAddress is optional; status queries and the watcher need it
	TimelockAddress string
}

type SignerServer struct {
	Type           string
	PrivateKey     string
	KMSKeyID       string
	AWSRegion      string
	AWSEndpointURL string
	RequestTimeout time.Duration
}

type AuditServer struct {
	LocalPath       string
	S3Bucket        string
	S3Prefix        string
	S3SSE           string
	S3ObjectLock    bool
	S3RetentionDays int
	S3UploadTimeout time.Duration
}

type WatcherServer struct {
	Enabled          bool
	Interval         time.Duration
	AlertWebhook     string
	BlockTxThreshold int
	// MinDelay flags schedules below the expected timelock delay
	MinDelay time.Duration
}

type Server struct {
	Echo    EchoServer
	Logger  LoggerServer
	Auth    AuthServer
	Chain   ChainServer
	Signer  SignerServer
	Audit   AuditServer
	Watcher WatcherServer
}

var dotEnvOnce sync.Once

// DefaultServiceConfigFromEnv assembles the full service configuration from
// the environment, loading a .env file first if one exists.
func DefaultServiceConfigFromEnv() Server {
	dotEnvOnce.Do(func() {
		_ = gotenv.Load()
	})

	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Auth: AuthServer{
			AdminAPIKey: util.GetEnv("ADMIN_API_KEY", "devkey"),
		},
		Chain: ChainServer{
			RPCURLs:         util.GetEnvAsStringArr("ARC_RPC_URLS", []string{util.GetEnv("ARC_RPC", "http://127.0.0.1:8545")}),
			TimelockAddress: util.GetEnv("ARCADIA_TIMELOCK", ""),
		},
		Signer: SignerServer{
			Type:           util.GetEnv("SIGNER_TYPE", "local"),
			PrivateKey:     util.GetEnv("ADMIN_PRIVATE_KEY", ""),
			KMSKeyID:       util.GetEnv("KMS_KEY_ID", ""),
			AWSRegion:      util.GetEnv("AWS_REGION", "us-east-1"),
			AWSEndpointURL: util.GetEnv("AWS_ENDPOINT_URL", ""),
			RequestTimeout: time.Duration(util.GetEnvAsInt("SIGNER_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Audit: AuditServer{
			LocalPath:       util.GetEnv("AUDIT_LOG_LOCAL", "logs/timelock_audit.log"),
			S3Bucket:        util.GetEnv("AUDIT_S3_BUCKET", ""),
			S3Prefix:        util.GetEnv("AUDIT_S3_PREFIX", "timelock-audit/"),
			S3SSE:           util.GetEnv("AUDIT_S3_SSE", "AES256"),
			S3ObjectLock:    util.GetEnvAsBool("AUDIT_S3_OBJECT_LOCK", false),
			S3RetentionDays: util.GetEnvAsInt("AUDIT_S3_RETENTION_DAYS", 365),
			S3UploadTimeout: time.Duration(util.GetEnvAsInt("AUDIT_S3_UPLOAD_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Watcher: WatcherServer{
			Enabled:          util.GetEnvAsBool("WATCHER_ENABLED", false),
			Interval:         time.Duration(util.GetEnvAsInt("WATCHER_INTERVAL_SECONDS", 2)) * time.Second,
			AlertWebhook:     util.GetEnv("ALERT_WEBHOOK", ""),
			BlockTxThreshold: util.GetEnvAsInt("WATCHER_BLOCK_TX_THRESHOLD", 1000),
			MinDelay:         time.Duration(util.GetEnvAsInt("WATCHER_MIN_DELAY_SECONDS", 0)) * time.Second,
		},
	}
}
