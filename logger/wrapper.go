package logger

type LevelWrapper struct {
	Base
}

func WrapLogger(l Base) Logger {
	return &LevelWrapper{l}
}

func (w *LevelWrapper) Debug(msg string, kv ...any) {
	w.Log(DebugLevel, msg, kv...)
}

func (w *LevelWrapper) Info(msg string, kv ...any) {
	w.Log(InfoLevel, msg, kv...)
}

func (w *LevelWrapper) Warn(msg string, kv ...any) {
	w.Log(WarnLevel, msg, kv...)
}

func (w *LevelWrapper) Error(msg string, kv ...any) {
	w.Log(ErrorLevel, msg, kv...)
}

func (w *LevelWrapper) With(kv ...any) Logger {
	return WrapLogger(&boundBase{base: w.Base, kv: kv})
}

// boundBase prepends a fixed set of key-value pairs to every Log call,
// allowing loggers to be tagged with component/stream identity once and
// reused without repeating the tags at every call site.
type boundBase struct {
	base Base
	kv   []any
}

func (b *boundBase) Level() LogLevel {
	return b.base.Level()
}

func (b *boundBase) Log(level LogLevel, msg string, kv ...any) {
	combined := make([]any, 0, len(b.kv)+len(kv))
	combined = append(combined, b.kv...)
	combined = append(combined, kv...)
	b.base.Log(level, msg, combined...)
}
