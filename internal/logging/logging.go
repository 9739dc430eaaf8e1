package logging

import (
	"os"

	"github.com/anveshk/nestmark/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide sugared logger. Init must be called once at
// startup; before that DefaultLogger is a no-op.
var (
	Logger        *zap.SugaredLogger
	DefaultLogger = zap.NewNop().Sugar()
)

func Init(cfg *config.AppConfig) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Logging.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		logger = zap.NewNop()
	}
	Logger = logger.Sugar()
	DefaultLogger = Logger
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
