package goclone

import "time"

// Logger defines the interface the copier reports through.
type Logger interface {
	// Debug logs a debug-level message
	Debug(format string, args ...interface{})
	// Info logs an info-level message
	Info(format string, args ...interface{})
	// Warn logs a warning-level message
	Warn(format string, args ...interface{})
	// Error logs an error-level message
	Error(format string, args ...interface{})
}

// DeepCopyable is implemented by types that own their copy construction.
// When the engine encounters a value implementing it, the value's DeepCopy
// method is invoked instead of field-wise duplication. The result still
// takes part in identity tracking, so two references to the same original
// resolve to the same copy.
type DeepCopyable interface {
	DeepCopy() interface{}
}

// CopierFunc produces a copy of a value of the type it was registered for.
// The argument is always of that exact type; the returned value must be
// assignable to it.
type CopierFunc func(original interface{}) interface{}

// Observer receives engine events. Implementations must be safe for
// concurrent use; independent copy sessions may report at the same time.
type Observer interface {
	// SessionStart is called when a top-level copy begins.
	SessionStart()
	// SessionEnd is called when a top-level copy returns, with its duration
	// and the number of objects duplicated during the traversal.
	SessionEnd(d time.Duration, objects int)
	// IdentityHit is called whenever the identity map short-circuits a
	// shared reference or cycle.
	IdentityHit()
}
