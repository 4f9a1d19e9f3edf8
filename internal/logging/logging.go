// Package logging builds the go-kit loggers used by the sgp4 binaries.
package logging

import (
	"io"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

// Config selects the output format and the minimum level.
type Config struct {
	Level  string // debug, info, warn or error
	Format string // logfmt or json
}

// New returns a leveled logger writing to w, with a UTC timestamp and the
// caller on every line.
func New(w io.Writer, cfg Config) (kitlog.Logger, error) {
	w = kitlog.NewSyncWriter(w)

	var logger kitlog.Logger
	switch strings.ToLower(cfg.Format) {
	case "", "logfmt":
		logger = kitlog.NewLogfmtLogger(w)
	case "json":
		logger = kitlog.NewJSONLogger(w)
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	opt, err := levelOption(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger = level.NewFilter(logger, opt)
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller), nil
}

func levelOption(name string) (level.Option, error) {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", name)
}
