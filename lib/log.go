package lib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogDirectory = "logs"
	LogFileName  = "log"
)

/*
	This file implements a logging system with support for different log levels (Debug, Info, Warn, Error, Fatal)
	and colored output. The Logger can write to stdout and an auto-rotating log file simultaneously.
*/

func init() {
	color.NoColor = false
}

// LoggerI defines the interface for various logging levels and formatted output
type LoggerI interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

const (
	DebugLevel int32 = -4
	InfoLevel  int32 = 0
	WarnLevel  int32 = 4
	ErrorLevel int32 = 8
)

var _ LoggerI = &Logger{}

// LoggerConfig holds configuration settings for the logger, including logging level and output writer
type LoggerConfig struct {
	Level int32 `json:"level"`
	Out   io.Writer
}

// Logger is the concrete implementation of LoggerI, managing log output based on configuration
type Logger struct {
	config LoggerConfig
}

// NewLogger() creates a new Logger writing to stdout and a rotating file under dataDirPath
func NewLogger(config LoggerConfig, dataDirPath ...string) LoggerI {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if len(dataDirPath) == 1 {
		config.Out = io.MultiWriter(config.Out, &lumberjack.Logger{
			Filename:   filepath.Join(dataDirPath[0], LogDirectory, LogFileName),
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}
	return &Logger{config: config}
}

// NewDefaultLogger() returns a stdout Logger at debug level
func NewDefaultLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel})
}

// NewNullLogger() returns a Logger that discards all output
func NewNullLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: ErrorLevel, Out: io.Discard})
}

// StringToLogLevel() converts a human-readable level string to its int32 level
func StringToLogLevel(s string) int32 {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Debug() logs a message at the Debug level with blue color
func (l *Logger) Debug(msg string) {
	if l.config.Level <= DebugLevel {
		l.write(color.BlueString("DEBUG: " + msg))
	}
}

// Info() logs a message at the Info level with green color
func (l *Logger) Info(msg string) {
	if l.config.Level <= InfoLevel {
		l.write(color.GreenString("INFO: " + msg))
	}
}

// Warn() logs a message at the Warn level with yellow color
func (l *Logger) Warn(msg string) {
	if l.config.Level <= WarnLevel {
		l.write(color.YellowString("WARN: " + msg))
	}
}

// Error() logs a message at the Error level with red color
func (l *Logger) Error(msg string) {
	if l.config.Level <= ErrorLevel {
		l.write(color.RedString("ERROR: " + msg))
	}
}

// Fatal() logs a message at the Error level and exits the process
func (l *Logger) Fatal(msg string) {
	l.write(color.RedString("FATAL: " + msg))
	os.Exit(1)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...interface{})  { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.Fatal(fmt.Sprintf(format, args...)) }

// write() timestamps the message and writes it to the configured writer
func (l *Logger) write(msg string) {
	if _, err := fmt.Fprintf(l.config.Out, "%s %s\n", time.Now().Format(time.StampMilli), msg); err != nil {
		fmt.Println(newLogError(err).Error())
	}
}

func newLogError(err error) ErrorI {
	return NewError(NoCode, MainModule, fmt.Sprintf("log write failed with err: %s", err.Error()))
}
