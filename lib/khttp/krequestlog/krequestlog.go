// Package krequestlog provides an http.Handler wrapper logging each request.
package krequestlog

import (
	"net/http"
	"time"

	"github.com/sduck/slim-oauth/lib/kflags"
	"github.com/sduck/slim-oauth/lib/khttp"
	"github.com/sduck/slim-oauth/lib/logger"
)

type Flags struct {
	LogStart bool
	LogEnd   bool
}

func DefaultFlags() *Flags {
	return &Flags{
		LogStart: false,
		LogEnd:   true,
	}
}

func (f *Flags) Register(set kflags.FlagSet, prefix string) *Flags {
	set.BoolVar(&f.LogStart, prefix+"log-start", f.LogStart, "Log request start")
	set.BoolVar(&f.LogEnd, prefix+"log-end", f.LogEnd, "Log request end")
	return f
}

type Options struct {
	Printer  func(format string, args ...interface{})
	LogStart bool
	LogEnd   bool
}

type Modifier func(*Options)

func NewOptions(mods ...Modifier) *Options {
	opts := &Options{
		Printer: logger.Go.Infof,
		LogEnd:  true,
	}
	for _, m := range mods {
		m(opts)
	}
	return opts
}

func WithLogger(log logger.Logger) Modifier {
	return func(o *Options) {
		o.Printer = log.Infof
	}
}

func FromFlags(flags *Flags) Modifier {
	return func(o *Options) {
		o.LogStart = flags.LogStart
		o.LogEnd = flags.LogEnd
	}
}

// statusWriter records the status code and body size written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	length int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Write(data []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(data)
	sw.length += n
	return n, err
}

// NewHandler returns a new http.Handler that logs requests.
func NewHandler(next http.Handler, mods ...Modifier) http.Handler {
	opts := NewOptions(mods...)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		method := r.Method
		origin := khttp.ClientOrigin(r)

		if opts.LogStart {
			opts.Printer("HTTP START origin=%s method=%s path=%s", origin, method, path)
		}

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		if opts.LogEnd {
			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			opts.Printer("HTTP END origin=%s method=%s path=%s status=%d size=%d duration=%v",
				origin, method, path, status, sw.length, time.Since(start))
		}
	})
}
