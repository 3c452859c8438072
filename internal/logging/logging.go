package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Audit 记录上传与删除的审计日志，按行追加到 <logDir>/app.log；
// 以注入方式传给各 handler，单例只存在于 main 的装配层
type Audit struct {
	logger *log.Logger
	file   *os.File
}

func New(logDir string) (*Audit, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(logDir, "app.log")
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	return &Audit{logger: logger, file: file}, nil
}

func (a *Audit) Success(msg string, keyvals ...interface{}) {
	a.logger.Info(msg, keyvals...)
}

func (a *Audit) Failure(msg string, keyvals ...interface{}) {
	a.logger.Error(msg, keyvals...)
}

// Close 在关停时刷写并关闭日志文件
func (a *Audit) Close() error {
	return a.file.Close()
}
