package logger

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultSinkFilename      = "application.log"
	defaultSinkErrorFilename = "error.log"
	defaultSinkErrorSizeMB   = 1
	defaultSinkErrorAgeDays  = 5
)

// SinkOptions 审计日志输出配置
type SinkOptions struct {
	Dir             string
	Filename        string
	ErrorFilename   string
	MaxSizeMB       int
	ErrorMaxSizeMB  int
	MaxBackups      int
	MaxAgeDays      int
	ErrorMaxAgeDays int
	Compress        bool
	MirrorToConsole bool
}

// RotatingSink 审计日志落盘
// application 文件接收 info 及以上，error 文件只接收 error 及以上
type RotatingSink struct {
	mu      sync.Mutex
	cores   []zapcore.Core
	closers []io.Closer
	now     func() time.Time
}

// NewRotatingSink 创建轮转审计日志
func NewRotatingSink(options SinkOptions) (*RotatingSink, error) {
	appPath, err := resolveLogFilePath(options.Dir, options.Filename, defaultSinkFilename)
	if err != nil {
		return nil, err
	}
	errorPath, err := resolveLogFilePath(options.Dir, options.ErrorFilename, defaultSinkErrorFilename)
	if err != nil {
		return nil, err
	}

	appWriter := newRotatingWriter(appPath, options.MaxSizeMB, options.MaxBackups, options.MaxAgeDays, options.Compress)
	errorWriter := newRotatingWriter(
		errorPath,
		normalizePositiveInt(options.ErrorMaxSizeMB, defaultSinkErrorSizeMB),
		options.MaxBackups,
		normalizePositiveInt(options.ErrorMaxAgeDays, defaultSinkErrorAgeDays),
		options.Compress,
	)

	encoderConfig := newEncoderConfig()
	encoderConfig.CallerKey = zapcore.OmitKey
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(appWriter), zap.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(errorWriter), zap.ErrorLevel),
	}
	if options.MirrorToConsole {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), zap.InfoLevel))
	}
	return newSinkFromCores(cores, appWriter, errorWriter), nil
}

func newSinkFromCores(cores []zapcore.Core, closers ...io.Closer) *RotatingSink {
	return &RotatingSink{
		cores:   cores,
		closers: closers,
		now:     time.Now,
	}
}

// Write 写入一条审计日志，任一输出失败都会返回错误
func (s *RotatingSink) Write(level string, message string, fields map[string]interface{}) error {
	entry := zapcore.Entry{
		Level:   ParseSinkLevel(level),
		Time:    s.now(),
		Message: message,
	}
	zapFields := mapToFields(fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	for _, core := range s.cores {
		if !core.Enabled(entry.Level) {
			continue
		}
		err = multierr.Append(err, core.Write(entry, zapFields))
	}
	return err
}

// Sync 刷新缓冲
func (s *RotatingSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	for _, core := range s.cores {
		err = multierr.Append(err, core.Sync())
	}
	return err
}

// Close 关闭文件句柄
func (s *RotatingSink) Close() error {
	err := s.Sync()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, closer := range s.closers {
		err = multierr.Append(err, closer.Close())
	}
	return err
}

// ParseSinkLevel 只有显式的 error 记为错误级别，其余一律为 info
func ParseSinkLevel(level string) zapcore.Level {
	if strings.EqualFold(strings.TrimSpace(level), "error") {
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func mapToFields(fields map[string]interface{}) []zapcore.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	result := make([]zapcore.Field, 0, len(keys))
	for _, key := range keys {
		result = append(result, zap.Any(key, fields[key]))
	}
	return result
}
