package core

// Logger logs application events locally and, depending on the implementation,
// reports them to an external tracking service.
type Logger interface {
	// Enable turns reporting to the external service on or off.
	// Local logging is not affected.
	Enable(enabled bool)

	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	// Fatal logs the message then exits the program.
	Fatal(msg string, args ...interface{})
}
