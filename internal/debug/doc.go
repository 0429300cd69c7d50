// Package debug provides the structured logger shared by the scene packages.
//
// Logging is off by default: [Logger] returns nil, and a nil logiface logger
// accepts every call as a no-op. Call [Init] to write JSON lines to a file, or
// [SetLogger] to install any logiface logger.
package debug
