// Package logging builds the zerolog loggers used across commentdash.
//
// Loggers are created from a Config (level, format, destination), tagged with
// a component name, and carried in a context.Context together with a ULID
// trace ID so every line of one command invocation can be correlated.
package logging
