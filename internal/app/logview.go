package app

import (
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logDebounceInterval = 150 * time.Millisecond

// logView keeps the last lines written by the logger for the on-screen log panel.
type logView struct {
	mu       sync.Mutex
	lines    []string
	limit    int
	bind     binding.String
	updateCh chan struct{}
}

func newLogView(limit int) *logView {
	return &logView{limit: limit, bind: binding.NewString()}
}

// core returns a zap core that writes human-readable lines into the view.
func (l *logView) core() zapcore.Core {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.CallerKey = ""
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(l), zap.InfoLevel)
}

func (l *logView) Write(p []byte) (int, error) {
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	l.mu.Lock()
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	ch := l.updateCh
	l.mu.Unlock()

	if ch == nil {
		l.flush()
		return len(p), nil
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return len(p), nil
}

func (l *logView) Sync() error { return nil }

func (l *logView) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.updateCh != nil {
		return
	}
	l.updateCh = make(chan struct{}, 1)
	go l.updateLoop(l.updateCh)
}

func (l *logView) updateLoop(ch <-chan struct{}) {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ch:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			l.flush()
		}
	}
}

func (l *logView) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func (l *logView) flush() {
	if l.bind != nil {
		_ = l.bind.Set(l.Text())
	}
}
