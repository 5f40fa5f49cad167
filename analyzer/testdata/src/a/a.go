package a

type Logger struct{}

func (Logger) Infov(format string, args ...any) {}

func Errorv(format string, args ...any) {}

const greeting = "Hello {}"

func f(l Logger, args []any) {
	l.Infov("Hello {}", "world")
	l.Infov("Hello {}")     // want `Invalid parameter count. Required: 1 provided 0`
	l.Infov(greeting, 1, 2) // want `Required: 1 provided 2`
	l.Infov("Value: {0}, Again: {0}", 1)
	Errorv("Unterminated {value") // want `appears to be missing an ending bracket`
	l.Infov("spread {} {}", args...)
	l.Infov("concat "+"{0} {1}", 1) // want `Required: 2 provided 1`
	l.Infov(greeting[:0], 1)
}
