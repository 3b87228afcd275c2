package logger

// Logger is the minimal logging contract the server packages depend on.
// Any *log.Logger satisfies it.
type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Println(...interface{})
}

// NullLogger discards everything. Packages log through a NullLogger until
// their SetLoggers is called.
type NullLogger struct {
}

func (l *NullLogger) Print(...interface{}) {
}

func (l *NullLogger) Printf(string, ...interface{}) {
}

func (l *NullLogger) Println(...interface{}) {
}
