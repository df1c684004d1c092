package logx

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Formatter is the interface for log formatters
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// LogEntry represents a single log entry
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
	Caller    string
}

// Fields is a map of structured data
type Fields map[string]interface{}

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorWhite = "\033[97m"

	colorBoldRed    = "\033[1;31m"
	colorBoldYellow = "\033[1;33m"
	colorBoldCyan   = "\033[1;36m"
	colorBoldGreen  = "\033[1;32m"
	colorRed        = "\033[31m"
)

// ConsoleFormatter formats logs for console output with colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var builder strings.Builder

	if f.config.EnableTimestamp {
		f.colored(&builder, colorGray, entry.Timestamp.Format(f.config.TimeFormat))
		builder.WriteString(" ")
	}

	builder.WriteString(f.formatLevel(entry.Level))
	builder.WriteString(" ")

	if f.config.EnableCaller && entry.Caller != "" {
		f.colored(&builder, colorGray, "["+entry.Caller+"]")
		builder.WriteString(" ")
	}

	f.colored(&builder, colorWhite, entry.Message)

	if len(entry.Fields) > 0 {
		builder.WriteString(" ")
		if f.config.EnableColors {
			builder.WriteString(colorCyan)
		}

		i := 0
		for k, v := range entry.Fields {
			if i > 0 {
				builder.WriteString(" ")
			}
			builder.WriteString(k)
			builder.WriteString("=")
			builder.WriteString(fmt.Sprintf("%v", v))
			i++
		}

		if f.config.EnableColors {
			builder.WriteString(colorReset)
		}
	}

	if entry.Error != nil {
		builder.WriteString("\n")
		f.colored(&builder, colorRed, "  error: "+entry.Error.Error())
	}

	builder.WriteString("\n")
	return []byte(builder.String()), nil
}

func (f *ConsoleFormatter) colored(builder *strings.Builder, color, s string) {
	if f.config.EnableColors {
		builder.WriteString(color)
		builder.WriteString(s)
		builder.WriteString(colorReset)
		return
	}
	builder.WriteString(s)
}

// formatLevel formats the level with appropriate color
func (f *ConsoleFormatter) formatLevel(level Level) string {
	if !f.config.EnableColors {
		return fmt.Sprintf("[%s]", level.String())
	}

	switch level {
	case LevelDebug:
		return fmt.Sprintf("%s[DEBUG]%s", colorBoldCyan, colorReset)
	case LevelInfo:
		return fmt.Sprintf("%s[INFO ]%s", colorBoldGreen, colorReset)
	case LevelWarn:
		return fmt.Sprintf("%s[WARN ]%s", colorBoldYellow, colorReset)
	case LevelError:
		return fmt.Sprintf("%s[ERROR]%s", colorBoldRed, colorReset)
	case LevelFatal:
		return fmt.Sprintf("%s[FATAL]%s", colorBoldRed, colorReset)
	default:
		return fmt.Sprintf("[%s]", level.String())
	}
}

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{})

	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if f.config.EnableTimestamp {
		data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
	}

	if f.config.EnableCaller && entry.Caller != "" {
		data["caller"] = entry.Caller
	}

	for k, v := range entry.Fields {
		data[k] = v
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return append(bytes, '\n'), nil
}
