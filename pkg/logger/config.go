package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text handler, dev default
	BackendZap Backend = "zap" // zap JSON via slog-zap, stage/prod default
)

type Config struct {
	// Common attrs stamped on every record
	Service    string
	Version    string
	InstanceID string

	// Output control
	Level   slog.Level
	Env     Env
	Backend Backend
	Debug   bool

	// Zap sampling knobs (zeros mean defaults)
	SampleInitial    int
	SampleThereafter int

	AddSource bool
}
