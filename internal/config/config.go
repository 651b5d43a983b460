package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	LogLevel           logging.Level
	LogFormat          string
	RateLimitRPS       float64
	RateLimitBurst     int

	StoreDriver             string
	DBURL                   string
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBSeedOnStart           bool
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration

	AnubisBaseURL               string
	AnubisIntrospectPath        string
	AnubisAdminKey              string
	AnubisTimeout               time.Duration
	AnubisPrincipalCacheTTL     time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int

	StartingBalance     decimal.Decimal
	ValuationMaxWorkers int
	ReportDefaultLimit  int
	PriceResetDefault   decimal.Decimal

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "lnf-fantasy-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	loaders := []func(*Config) error{
		loadHTTP,
		loadStore,
		loadAnubis,
		loadValuation,
		loadObservability,
	}
	for _, load := range loaders {
		if err := load(&cfg); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func loadHTTP(cfg *Config) error {
	swaggerDefault := "true"
	if cfg.AppEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := getEnvAsBool("SWAGGER_ENABLED", swaggerDefault)
	if err != nil {
		return err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return err
	}
	shutdownTimeout, err := getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return err
	}

	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", LogFormatJSON)))
	if logFormat != LogFormatJSON && logFormat != LogFormatConsole {
		return fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, LogFormatJSON, LogFormatConsole)
	}

	origins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(origins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	// 0 disables per-client rate limiting.
	rateLimitRPS, err := strconv.ParseFloat(strings.TrimSpace(getEnv("HTTP_RATE_LIMIT_RPS", "20")), 64)
	if err != nil {
		return fmt.Errorf("parse HTTP_RATE_LIMIT_RPS: %w", err)
	}
	if rateLimitRPS < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT_RPS must be >= 0")
	}
	rateLimitBurst, err := getEnvAsInt("HTTP_RATE_LIMIT_BURST", 40)
	if err != nil {
		return fmt.Errorf("parse HTTP_RATE_LIMIT_BURST: %w", err)
	}
	if rateLimitRPS > 0 && rateLimitBurst < 1 {
		return fmt.Errorf("HTTP_RATE_LIMIT_BURST must be > 0")
	}

	cfg.SwaggerEnabled = swaggerEnabled
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.ShutdownTimeout = shutdownTimeout
	cfg.LogFormat = logFormat
	cfg.CORSAllowedOrigins = origins
	cfg.RateLimitRPS = rateLimitRPS
	cfg.RateLimitBurst = rateLimitBurst
	return nil
}

func loadStore(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMemory)))
	switch driver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", driver, StoreMemory, StorePostgres)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if driver == StorePostgres && dbURL == "" {
		return fmt.Errorf("DB_URL is required when STORE_DRIVER=%s", StorePostgres)
	}

	maxOpen, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if maxOpen < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	maxIdle, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if maxIdle < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}

	seedOnStart, err := getEnvAsBool("DB_SEED_ON_START", "false")
	if err != nil {
		return err
	}
	disablePreparedBinary, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "false")
	if err != nil {
		return err
	}

	cacheEnabled, err := getEnvAsBool("CACHE_ENABLED", "true")
	if err != nil {
		return err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "60s")
	if err != nil {
		return err
	}

	cfg.StoreDriver = driver
	cfg.DBURL = dbURL
	cfg.DBMaxOpenConns = maxOpen
	cfg.DBMaxIdleConns = maxIdle
	cfg.DBSeedOnStart = seedOnStart
	cfg.DBDisablePreparedBinary = disablePreparedBinary
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL
	return nil
}

func loadAnubis(cfg *Config) error {
	timeout, err := getEnvAsDuration("ANUBIS_TIMEOUT", "3s")
	if err != nil {
		return err
	}
	principalTTL, err := getEnvAsDuration("ANUBIS_PRINCIPAL_CACHE_TTL", "30s")
	if err != nil {
		return err
	}

	circuitEnabled, err := getEnvAsBool("ANUBIS_CIRCUIT_ENABLED", "true")
	if err != nil {
		return err
	}
	failureCount, err := getEnvAsInt("ANUBIS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("parse ANUBIS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if failureCount < 1 {
		return fmt.Errorf("ANUBIS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	openTimeout, err := getEnvAsDuration("ANUBIS_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return err
	}
	halfOpenMaxReq, err := getEnvAsInt("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return fmt.Errorf("parse ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if halfOpenMaxReq < 1 {
		return fmt.Errorf("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg.AnubisBaseURL = getEnv("ANUBIS_BASE_URL", "http://localhost:8081")
	cfg.AnubisIntrospectPath = getEnv("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect")
	cfg.AnubisAdminKey = strings.TrimSpace(getEnv("ANUBIS_ADMIN_KEY", ""))
	cfg.AnubisTimeout = timeout
	cfg.AnubisPrincipalCacheTTL = principalTTL
	cfg.AnubisCircuitEnabled = circuitEnabled
	cfg.AnubisCircuitFailureCount = failureCount
	cfg.AnubisCircuitOpenTimeout = openTimeout
	cfg.AnubisCircuitHalfOpenMaxReq = halfOpenMaxReq
	return nil
}

func loadValuation(cfg *Config) error {
	startingBalance, err := getEnvAsDecimal("STARTING_BALANCE", "100.00")
	if err != nil {
		return err
	}
	if !startingBalance.IsPositive() {
		return fmt.Errorf("STARTING_BALANCE must be > 0")
	}

	maxWorkers, err := getEnvAsInt("VALUATION_MAX_WORKERS", 1)
	if err != nil {
		return fmt.Errorf("parse VALUATION_MAX_WORKERS: %w", err)
	}
	if maxWorkers < 1 {
		return fmt.Errorf("VALUATION_MAX_WORKERS must be >= 1")
	}

	reportLimit, err := getEnvAsInt("REPORT_DEFAULT_LIMIT", 10)
	if err != nil {
		return fmt.Errorf("parse REPORT_DEFAULT_LIMIT: %w", err)
	}
	if reportLimit < 1 || reportLimit > 100 {
		return fmt.Errorf("REPORT_DEFAULT_LIMIT must be between 1 and 100")
	}

	resetDefault, err := getEnvAsDecimal("PRICE_RESET_DEFAULT", "5.00")
	if err != nil {
		return err
	}
	if !resetDefault.IsPositive() {
		return fmt.Errorf("PRICE_RESET_DEFAULT must be > 0")
	}

	cfg.StartingBalance = startingBalance.Round(2)
	cfg.ValuationMaxWorkers = maxWorkers
	cfg.ReportDefaultLimit = reportLimit
	cfg.PriceResetDefault = resetDefault.Round(2)
	return nil
}

func loadObservability(cfg *Config) error {
	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", "false")
	if err != nil {
		return err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := getEnvAsBool("PPROF_ENABLED", "false")
	if err != nil {
		return err
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", "false")
	if err != nil {
		return err
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return err
	}

	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = pprofAddr
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate
	return nil
}
