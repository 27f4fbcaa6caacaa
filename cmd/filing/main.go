package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gartstein/efiling/internal/filing/auth"
	"github.com/gartstein/efiling/internal/filing/controller"
	gorm "github.com/gartstein/efiling/internal/filing/db"
	"github.com/gartstein/efiling/internal/filing/events"
	"github.com/gartstein/efiling/internal/filing/handlers"
	"github.com/gartstein/efiling/internal/filing/metrics"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/gartstein/efiling/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	GRPCPort      int      `yaml:"GRPC_PORT"`
	HTTPPort      int      `yaml:"HTTP_PORT"`
	DBHost        string   `yaml:"DB_HOST"`
	DBPort        int      `yaml:"DB_PORT"`
	DBUser        string   `yaml:"DB_USER"`
	DBPassword    string   `yaml:"DB_PASSWORD"`
	DBName        string   `yaml:"DB_NAME"`
	DBSSLMode     string   `yaml:"DB_SSLMODE"`
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	JWTSecret     string   `yaml:"JWT_SECRET"`
	Topic         string   `yaml:"TOPIC"`
	DecisionTopic string   `yaml:"DECISION_TOPIC"`
	ConsumerGroup string   `yaml:"CONSUMER_GROUP"`
	MinimumAge    int      `yaml:"MINIMUM_AGE"`
	LogLevel      string   `yaml:"LOG_LEVEL"`
	LogFile       string   `yaml:"LOG_FILE"`
	LogMaxSizeMB  int      `yaml:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int      `yaml:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int      `yaml:"LOG_MAX_AGE_DAYS"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	repo, err := gorm.NewRepository(initDatabase(cfg))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	var opts []validator.Option
	if cfg.MinimumAge > 0 {
		opts = append(opts, validator.WithMinimumAge(cfg.MinimumAge))
	}
	filingSvc := controller.NewFilingService(repo, producer, validator.New(opts...), metrics.New(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.DecisionTopic != "" {
		consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.DecisionTopic, logger)
		consumer.RegisterHandler(func(ctx context.Context, d models.Decision) error {
			_, err := filingSvc.RecordDecision(ctx, d)
			return err
		})
		consumer.Start(ctx)
		defer consumer.Close()
	}

	// Create handlers
	filingHandler := handlers.NewFilingHandler(filingSvc, logger)
	httpHandler := handlers.NewHTTPHandler(filingSvc, logger)

	authInterceptor := auth.NewAuthInterceptor(cfg.JWTSecret)
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(authInterceptor.Unary()))
	server.RegisterGRPCHandler(filingHandler)

	if err := server.RegisterHTTPGateway(httpHandler, prometheus.DefaultGatherer, cfg.JWTSecret); err != nil {
		logger.Fatal("Failed to register HTTP gateway", zap.Error(err))
	}
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start servers", zap.Error(err))
	}

	waitForShutdown(server, logger)
}

func initLogger(cfg *Config) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
}

// loadConfig reads the YAML file named by FILING_CONFIG, falling back to the
// in-repo default.
func loadConfig() (*Config, error) {
	configPath := os.Getenv("FILING_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("internal", "filing", "config", "config.yaml")
	}
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initDatabase initializes the database connection.
func initDatabase(cfg *Config) *gorm.Config {
	return &gorm.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Servers stopped properly")
}
