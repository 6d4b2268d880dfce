package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	Minio     *MinIOCfg
	Http      *HTTPConfig
	Db        *PGDBCfg
	Redis     *RedisCfg
	Kafka     *KafkaCfg
	Reconcile *ReconcileCfg
	Product   *ProductCfg
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	OutboxBatchSize   int
	// Событие в статусе processing дольше этого времени снова выдаётся воркерам
	OutboxProcessingTimeout time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для изображений продуктов
	MinioRootUser     string // Имя пользователя для доступа к Minio
	MinioRootPassword string // Пароль для доступа к Minio
	MinioUseSSL       bool   // Подключение к Minio по TLS
	Region            string
	CleanupRetries    int // Количество попыток фонового удаления объекта
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64 // Ограничение тела multipart-запроса в байтах
	SwaggerURL     string
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxConns      int32
	MigrationsDir string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

// ReconcileCfg управляет фоновой очисткой изображений, не привязанных ни к одному продукту.
type ReconcileCfg struct {
	Enabled     bool
	Interval    time.Duration // Период между проходами
	GracePeriod time.Duration // Минимальный возраст незавершённой загрузки
	BatchSize   int
	LockKey     string
	LockTTL     time.Duration
}

type ProductCfg struct {
	// Удалять предыдущее изображение из хранилища после успешной замены при обновлении продукта.
	PurgeReplacedImages bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Если в рабочей директории есть файл .env, переменные из него подгружаются без перезаписи уже заданных.
func Load(log logger.Logger) (*Config, error) {
	loadDotEnv(log)

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	reconcile, err := loadReconcileCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product, err := loadProductCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Minio:     minio,
		Http:      http,
		Db:        db,
		Redis:     redis,
		Kafka:     kafka,
		Reconcile: reconcile,
		Product:   product,
	}, nil
}

func loadDotEnv(log logger.Logger) {
	const envFile = ".env"

	if _, err := os.Stat(envFile); err != nil {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("failed to load %s: %v", envFile, err)
		return
	}

	log.Infof("%s file loaded", envFile)
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultOutboxBatchSize   = 10
		defaultProcessingTimeout = 5 * time.Minute
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := splitAndTrim(brokerStr)

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	batchSize, err := parseIntEnv("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	if err != nil {
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", err)
	}

	processingTimeout, err := parseDurationEnv("OUTBOX_PROCESSING_TIMEOUT", defaultProcessingTimeout)
	if err != nil {
		return nil, e.Wrap("OUTBOX_PROCESSING_TIMEOUT", err)
	}

	return &KafkaCfg{
		Brokers:                 brokers,
		Topic:                   topic,
		Partitions:              partitions,
		ReplicationFactor:       replicationFactor,
		NetworkMode:             getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		OutboxBatchSize:         batchSize,
		OutboxProcessingTimeout: processingTimeout,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL         = false
		defaultEndpoint       = "minio:9000"
		defaultCleanupRetries = 3
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	bucket := getEnv("BUCKET_NAME")
	if bucket == "" {
		err := fmt.Errorf("BUCKET_NAME is required")
		log.Errorf(err, "missing BUCKET_NAME")
		return nil, err
	}

	retries, err := parseIntEnv("MINIO_CLEANUP_RETRIES", defaultCleanupRetries)
	if err != nil {
		log.Errorf(err, "invalid MINIO_CLEANUP_RETRIES")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		Region:            getEnv("MINIO_REGION"),
		CleanupRetries:    retries,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 30 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		// Изображение до 1 GiB плюс поля формы.
		defaultMaxRequestSize = 1<<30 + 1<<20
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	maxRequestSize, err := strconv.ParseInt(getEnvOrDefault("HTTP_MAX_REQUEST_SIZE", strconv.Itoa(defaultMaxRequestSize)), 10, 64)
	if err != nil {
		log.Errorf(err, "invalid HTTP_MAX_REQUEST_SIZE")
		return nil, err
	}

	return &HTTPConfig{
		Port:           port,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxRequestSize: maxRequestSize,
		SwaggerURL:     getEnvOrDefault("SWAGGER_URL", "http://localhost:"+port+"/swagger/doc.json"),
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMaxConns      = 10
		defaultMigrationsDir = "db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MaxConns:      int32(maxConns),
		MigrationsDir: getEnvOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

func loadReconcileCfg(log logger.Logger) (*ReconcileCfg, error) {
	const (
		defaultEnabled     = true
		defaultInterval    = 5 * time.Minute
		defaultGracePeriod = 30 * time.Minute
		defaultBatchSize   = 100
		defaultLockKey     = "inventory:images:reconcile"
		defaultLockTTL     = 2 * time.Minute
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("RECONCILE_ENABLED", strconv.FormatBool(defaultEnabled)))
	if err != nil {
		log.Errorf(err, "invalid RECONCILE_ENABLED")
		return nil, err
	}

	interval, err := parseDurationEnv("RECONCILE_INTERVAL", defaultInterval)
	if err != nil {
		log.Errorf(err, "invalid RECONCILE_INTERVAL")
		return nil, err
	}

	grace, err := parseDurationEnv("RECONCILE_GRACE_PERIOD", defaultGracePeriod)
	if err != nil {
		log.Errorf(err, "invalid RECONCILE_GRACE_PERIOD")
		return nil, err
	}

	batch, err := parseIntEnv("RECONCILE_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		log.Errorf(err, "invalid RECONCILE_BATCH_SIZE")
		return nil, err
	}

	lockTTL, err := parseDurationEnv("RECONCILE_LOCK_TTL", defaultLockTTL)
	if err != nil {
		log.Errorf(err, "invalid RECONCILE_LOCK_TTL")
		return nil, err
	}

	return &ReconcileCfg{
		Enabled:     enabled,
		Interval:    interval,
		GracePeriod: grace,
		BatchSize:   batch,
		LockKey:     getEnvOrDefault("RECONCILE_LOCK_KEY", defaultLockKey),
		LockTTL:     lockTTL,
	}, nil
}

func loadProductCfg(log logger.Logger) (*ProductCfg, error) {
	purge, err := strconv.ParseBool(getEnvOrDefault("PRODUCT_PURGE_REPLACED_IMAGES", "false"))
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_PURGE_REPLACED_IMAGES")
		return nil, err
	}

	return &ProductCfg{PurgeReplacedImages: purge}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}

	return res
}
