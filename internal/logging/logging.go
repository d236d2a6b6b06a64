// Package logging wraps zap to produce the line-oriented log sink
// described by the external-interfaces contract: a single CodeGen.log
// file plus stdout, formatted "YYYY-MM-DD HH:MM:SS [LEVEL] message",
// with ERROR lines optionally carrying "EXCEPTION: <detail>".
//
// The logger is constructed once and passed explicitly to collaborators
// rather than reached for as ambient global state.
package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide sink, injected at construction into every
// component that needs to report progress or failure.
type Logger struct {
	zl *zap.Logger
}

// New opens (creating if necessary) the log file at path and returns a
// Logger that duplicates every entry to path and to stdout.
func New(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	enc := &lineEncoder{}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel)
	stdoutCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return &Logger{zl: zap.New(zapcore.NewTee(fileCore, stdoutCore))}, nil
}

// Named scopes the logger to a component name, mirroring the
// logger.Named("component") convention used for structured, per-service
// logging.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zl: l.zl.Named(name)}
}

func (l *Logger) Info(msg string, fields ...zap.Field)    { l.zl.Info(msg, fields...) }
func (l *Logger) Warning(msg string, fields ...zap.Field) { l.zl.Warn(msg, fields...) }

// Error logs msg at ERROR level. If cause is non-nil its text is
// appended to the rendered line as "EXCEPTION: <detail>".
func (l *Logger) Error(msg string, cause error, fields ...zap.Field) {
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	l.zl.Error(msg, fields...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error { return l.zl.Sync() }

// lineEncoder renders each entry as
// "YYYY-MM-DD HH:MM:SS [LEVEL] message[ EXCEPTION: detail]",
// ignoring zap's structured-field machinery beyond extracting a
// wrapped error for the EXCEPTION suffix.
type lineEncoder struct{}

func (e *lineEncoder) levelToken(l zapcore.Level) string {
	switch l {
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (e *lineEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := buffer.NewPool().Get()
	buf.AppendString(entry.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString(" [")
	buf.AppendString(e.levelToken(entry.Level))
	buf.AppendString("] ")
	buf.AppendString(entry.Message)

	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if cause, ok := f.Interface.(error); ok && cause != nil {
				buf.AppendString(" EXCEPTION: ")
				buf.AppendString(cause.Error())
			}
		}
	}
	buf.AppendString("\n")
	return buf, nil
}

// The remaining methods satisfy zapcore.Encoder but are unused: this
// encoder only ever renders whole entries via EncodeEntry.
func (e *lineEncoder) AddArray(string, zapcore.ArrayMarshaler) error  { return nil }
func (e *lineEncoder) AddObject(string, zapcore.ObjectMarshaler) error { return nil }
func (e *lineEncoder) AddBinary(string, []byte)                      {}
func (e *lineEncoder) AddByteString(string, []byte)                  {}
func (e *lineEncoder) AddBool(string, bool)                          {}
func (e *lineEncoder) AddComplex128(string, complex128)              {}
func (e *lineEncoder) AddComplex64(string, complex64)                {}
func (e *lineEncoder) AddDuration(string, time.Duration)             {}
func (e *lineEncoder) AddFloat64(string, float64)                    {}
func (e *lineEncoder) AddFloat32(string, float32)                    {}
func (e *lineEncoder) AddInt(string, int)                            {}
func (e *lineEncoder) AddInt64(string, int64)                        {}
func (e *lineEncoder) AddInt32(string, int32)                        {}
func (e *lineEncoder) AddInt16(string, int16)                        {}
func (e *lineEncoder) AddInt8(string, int8)                          {}
func (e *lineEncoder) AddString(string, string)                      {}
func (e *lineEncoder) AddTime(string, time.Time)                     {}
func (e *lineEncoder) AddUint(string, uint)                          {}
func (e *lineEncoder) AddUint64(string, uint64)                      {}
func (e *lineEncoder) AddUint32(string, uint32)                      {}
func (e *lineEncoder) AddUint16(string, uint16)                      {}
func (e *lineEncoder) AddUint8(string, uint8)                        {}
func (e *lineEncoder) AddUintptr(string, uintptr)                    {}
func (e *lineEncoder) AddReflected(string, interface{}) error        { return nil }
func (e *lineEncoder) OpenNamespace(string)                          {}
func (e *lineEncoder) Clone() zapcore.Encoder                        { return &lineEncoder{} }
