package manifest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/evan-idocoding/tweaks/scan"
	"github.com/evan-idocoding/tweaks/value"
)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// Loader reads manifest files into declaration records.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(ld)
		}
	}
	if ld.logger == nil {
		ld.logger = slog.Default()
	}
	return ld
}

// Load reads every manifest file in order and returns their records.
func Load(ctx context.Context, paths ...string) ([]scan.Record, error) {
	return NewLoader().Load(ctx, paths...)
}

// Declare loads the manifest files and appends their records to the process-wide
// declaration table.
func Declare(ctx context.Context, paths ...string) error {
	recs, err := Load(ctx, paths...)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		scan.Declare(rec)
	}
	return nil
}

// Load reads every manifest file in order and returns their records.
func (ld *Loader) Load(ctx context.Context, paths ...string) ([]scan.Record, error) {
	parser := hclparse.NewParser()
	var out []scan.Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ld.logger.Debug("Decoding tweak manifest.", "path", path)
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: parse %s: %s", ErrInvalidManifest, path, diags.Error())
		}
		recs, err := ld.decode(path, file)
		if err != nil {
			return nil, err
		}
		ld.logger.Debug("Decoded tweak manifest.", "path", path, "tweaks", len(recs))
		out = append(out, recs...)
	}
	return out, nil
}

// Parse decodes manifest source held in memory. filename is used in diagnostics only.
func (ld *Loader) Parse(filename string, src []byte) ([]scan.Record, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: parse %s: %s", ErrInvalidManifest, filename, diags.Error())
	}
	return ld.decode(filename, file)
}

func (ld *Loader) decode(path string, file *hcl.File) ([]scan.Record, error) {
	var cfg fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("%w: decode %s: %s", ErrInvalidManifest, path, diags.Error())
	}
	var out []scan.Record
	for _, cat := range cfg.Categories {
		for _, col := range cat.Collections {
			for _, tw := range col.Tweaks {
				rec, err := record(cat.Name, col.Name, tw)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: tweak %q/%q/%q: %v", ErrInvalidManifest, path, cat.Name, col.Name, tw.Name, err)
				}
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func record(category, collection string, tw tweakConfig) (scan.Record, error) {
	def, err := evalValue(tw.Default)
	if err != nil {
		return scan.Record{}, fmt.Errorf("default: %w", err)
	}
	if def.IsNone() {
		return scan.Record{}, fmt.Errorf("default is required")
	}
	kind := def.Kind()
	if tw.Type != nil {
		k, ok := value.ParseKind(*tw.Type)
		if !ok || k == value.KindNone || k == value.KindAction {
			return scan.Record{}, fmt.Errorf("unsupported type %q", *tw.Type)
		}
		kind = k
		if def, err = convert(def, kind); err != nil {
			return scan.Record{}, fmt.Errorf("default: %w", err)
		}
	}

	b, err := bounds(tw, kind)
	if err != nil {
		return scan.Record{}, err
	}
	return scan.Record{
		Category:   category,
		Collection: collection,
		Name:       tw.Name,
		Value:      def,
		Bounds:     b,
		Signature:  scan.SignatureOf(def),
	}, nil
}

// bounds builds the optional constraint. At most one of min/max, choices and mapping may be
// given; min and max go together.
func bounds(tw tweakConfig, kind value.Kind) (any, error) {
	lo, err := evalValue(tw.Min)
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	hi, err := evalValue(tw.Max)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	choices, err := evalValue(tw.Choices)
	if err != nil {
		return nil, fmt.Errorf("choices: %w", err)
	}
	mapping, err := evalValue(tw.Mapping)
	if err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}

	given := 0
	for _, ok := range []bool{!lo.IsNone() || !hi.IsNone(), !choices.IsNone(), !mapping.IsNone()} {
		if ok {
			given++
		}
	}
	if given > 1 {
		return nil, fmt.Errorf("only one of min/max, choices and mapping may be set")
	}

	switch {
	case !lo.IsNone() || !hi.IsNone():
		if lo.IsNone() || hi.IsNone() {
			return nil, fmt.Errorf("min and max must be set together")
		}
		if lo, err = convert(lo, kind); err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if hi, err = convert(hi, kind); err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		return value.NewRange(lo, hi)
	case !choices.IsNone():
		items, ok := choices.AsArray()
		if !ok {
			return nil, fmt.Errorf("choices must be a list")
		}
		out := make(value.Choices, len(items))
		for i, it := range items {
			if out[i], err = convert(it, kind); err != nil {
				return nil, fmt.Errorf("choices[%d]: %w", i, err)
			}
		}
		return out, nil
	case !mapping.IsNone():
		fields, ok := mapping.AsDict()
		if !ok {
			return nil, fmt.Errorf("mapping must be an object")
		}
		return value.NewMapping(fields), nil
	}
	return nil, nil
}
