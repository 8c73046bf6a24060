package util

import (
	"os"
	"sync"
	"time"
)

/*
 * a custom logger: leveled, optionally colored, optionally appending
 * to a file instead of stderr.
 */
const (
	Error   = 1
	Warning = 2
	Info    = 4

	RedColor    = "\033[31m"
	YellowColor = "\033[33m"
	GreenColor  = "\033[32m"
	ResetColor  = "\033[0m"
)

type LoggerInfo struct {
	Filename  string `yaml:"filename"`
	IsColored bool   `yaml:"is_colored"`
	SaveTime  bool   `yaml:"save_time"`
	Mode      uint8  `yaml:"mode"`
}

type Logger struct {
	li  *LoggerInfo
	mtx sync.Mutex
}

func NewLogger(li *LoggerInfo) *Logger {
	return &Logger{
		li,
		sync.Mutex{},
	}
}

func (l *Logger) colorize(line string, color string) string {
	if l.li.IsColored && l.li.Filename == "" {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString(str string, clr string) string {
	toWrite := l.colorize(str, clr) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format(time.RFC3339) + " "
	}
	return toWrite
}

func (l *Logger) LogString(s string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.li.Filename == "" {
		os.Stderr.WriteString(s + "\n")
		return
	}
	f, err := os.OpenFile(l.li.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err == nil {
		defer f.Close()
		f.WriteString(s + "\n")
	}
}

func (l *Logger) LogError(err error) {
	if l.li.Mode&Error == Error {
		l.LogString(l.prepareString("[ERROR]", RedColor) + err.Error())
	}
}

func (l *Logger) LogWarning(s string) {
	if l.li.Mode&Warning == Warning {
		l.LogString(l.prepareString("[WARNING]", YellowColor) + s)
	}
}

func (l *Logger) LogInfo(s string) {
	if l.li.Mode&Info == Info {
		l.LogString(l.prepareString("[INFO]", GreenColor) + s)
	}
}
