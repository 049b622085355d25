package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/logger"

	"go.uber.org/zap"
)

// 运行模式
const (
	ModeAll     = "all"
	ModePosts   = "posts"
	ModeUsers   = "users"
	ModeLogging = "logging"
	ModeWorker  = "worker"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// ParseMode 校验运行模式，空值视为 all
func ParseMode(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModePosts, ModeUsers, ModeLogging, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want all|posts|users|logging|worker)", mode)
	}
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
