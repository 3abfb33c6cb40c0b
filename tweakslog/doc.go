// Package tweakslog binds tweaks to log/slog.
//
// Observers run synchronously on the goroutine that changes the tweak, so do not change a
// level tweak on latency-sensitive hot paths.
package tweakslog
