package tres

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-tres/value"
)

// DefaultExtension is the file extension of resource documents.
const DefaultExtension = ".tres"

// Option configures parsing, writing and loading.
type Option func(*options) error

type options struct {
	floats    value.FloatFormatter
	extension string
	logger    *slog.Logger
	colors    bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		floats:    value.DefaultFloatFormat,
		extension: DefaultExtension,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o, nil
}

// FloatFormat returns an Option that sets how floats, including Color and
// Vector2 components, are written. The default is value.DefaultFloatFormat.
func FloatFormat(ff value.FloatFormatter) Option {
	return func(o *options) error {
		if ff == nil {
			return fmt.Errorf("tres: float formatter must not be nil")
		}
		o.floats = ff
		return nil
	}
}

// Extension returns an Option that sets the file extension the loader looks
// for. Matching is case-sensitive and the extension must start with a dot.
func Extension(ext string) Option {
	return func(o *options) error {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("tres: invalid extension %q", ext)
		}
		o.extension = ext
		return nil
	}
}

// Logger returns an Option that sets the logger used to report skipped files
// and lines. The default is slog.Default().
func Logger(l *slog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// Colors returns an Option that highlights written documents with terminal
// colors. It is meant for display; colored output is not a valid document.
func Colors(enabled bool) Option {
	return func(o *options) error {
		o.colors = enabled
		return nil
	}
}
