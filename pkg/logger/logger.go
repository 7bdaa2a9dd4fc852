// Package logger configures the process-wide slog logger for chat-service.
// Dev environments get a plain text handler, stage/prod a sampled zap JSON
// handler behind the slog facade.
package logger

import "log/slog"

var def *slog.Logger

// Init builds the handler for the given config and installs it as the slog
// default. Call once from main before anything logs.
func Init(cfg Config) {
	if cfg.Env == "" {
		cfg.Env = DetectEnv()
	}
	if cfg.Service == "" {
		cfg.Service = "chat-service"
	}
	cfg.InstanceID = ensureInstanceID(cfg.InstanceID)

	if cfg.Backend == "" {
		if cfg.Env == EnvDev {
			cfg.Backend = BackendStd
		} else {
			cfg.Backend = BackendZap
		}
	}

	var h slog.Handler
	switch cfg.Backend {
	case BackendZap:
		h = newZapHandler(cfg)
	default:
		h = newStdHandler(cfg)
	}

	h = h.WithAttrs(commonAttrs(cfg))

	base := slog.New(h)
	slog.SetDefault(base)
	def = base
}

// L returns the configured logger, initializing with defaults if Init was
// never called (tests mostly).
func L() *slog.Logger {
	if def != nil {
		return def
	}

	Init(Config{})
	return def
}
