package netlist

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures Decode and DecodeReader.
//
// Options are applied to a fresh configuration on every call, so an Option
// value may be shared between goroutines.
type Option func(*options)

type options struct {
	contract bool
	logger   *slog.Logger
}

func defaultOptions() *options {
	return &options{}
}

func applyOptions(opts []Option) *options {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithContract additionally checks the document against the embedded CUE
// description of the Yosys JSON format after it decoded successfully. The
// contract is stricter than the decoder: flags must be 0 or 1, memory widths
// positive and cell types non-empty. Failures are KindSchemaViolation and
// wrap every contract error.
func WithContract() Option {
	return func(o *options) {
		o.contract = true
	}
}

// WithLogger makes Decode log one debug record per call to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) logDecode(n *Netlist, size int, err error) {
	if o.logger == nil || !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if err != nil {
		attrs := []slog.Attr{
			slog.String("kind", KindOf(err).String()),
			slog.Int("bytes", size),
			slog.Any("error", err),
		}
		var nerr *Error
		if errors.As(err, &nerr) && nerr.Path != "" {
			attrs = append(attrs, slog.String("path", nerr.Path))
		}
		o.logger.LogAttrs(context.Background(), slog.LevelDebug, "netlist decode failed", attrs...)
		return
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "netlist decoded",
		slog.String("creator", n.Creator),
		slog.Int("modules", len(n.Modules)),
		slog.Int("bytes", size),
	)
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	prefix string
	indent string
}

func applyEncodeOptions(opts []EncodeOption) *encodeOptions {
	cfg := &encodeOptions{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIndent makes Encode indent nested values like json.MarshalIndent.
func WithIndent(prefix, indent string) EncodeOption {
	return func(o *encodeOptions) {
		o.prefix = prefix
		o.indent = indent
	}
}
