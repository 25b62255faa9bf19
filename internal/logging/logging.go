// Package logging builds the go-kit loggers used by kvs.
package logging

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logger writing to w in the given format ("logfmt" or
// "json"), dropping anything below lvl. An empty format or level falls
// back to logfmt and info.
func New(w io.Writer, format, lvl string) (log.Logger, error) {
	var l log.Logger

	switch format {
	case "", "logfmt":
		l = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case "json":
		l = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	opt, err := allowLevel(lvl)
	if err != nil {
		return nil, err
	}

	l = level.NewFilter(l, opt)
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return l, nil
}

func allowLevel(lvl string) (level.Option, error) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
}
