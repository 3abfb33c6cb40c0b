package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/evan-idocoding/tweaks/manifest"
	"github.com/evan-idocoding/tweaks/scan"
	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/store/blob"
	"github.com/evan-idocoding/tweaks/value"
)

func tweaksMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// session is a store materialized from the manifests, backed by the store file.
type session struct {
	store *store.Store
	file  *blob.File
}

func (cfg *MainConfig) open(ctx context.Context) (*session, error) {
	if len(cfg.Manifests) == 0 {
		return nil, fmt.Errorf("%w: at least one -m manifest is required", cli.ErrUsage)
	}
	recs, err := manifest.Load(ctx, cfg.Manifests...)
	if err != nil {
		return nil, err
	}
	st := store.New()
	rep := scan.New(st, scan.WithRecords(recs...)).Scan()
	for _, err := range append(rep.Skipped, rep.Duplicates...) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	s := &session{store: st}
	if cfg.Store != "" {
		f, err := blob.OpenFile(cfg.Store)
		if err != nil {
			return nil, err
		}
		s.file = f
		if err := st.SetBlobStore(f); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return s, nil
}

func (s *session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// lookup resolves either an identifier or a category, collection and name triple. It
// returns the arguments left over.
func (s *session) lookup(args []string) (*store.Tweak, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%w: missing tweak", cli.ErrUsage)
	}
	id := args[0]
	rest := args[1:]
	if _, _, _, ok := store.SplitIdentifier(id); !ok {
		if len(args) < 3 {
			return nil, nil, fmt.Errorf("%w: want an identifier or category collection name", cli.ErrUsage)
		}
		id = store.Identifier(args[0], args[1], args[2])
		rest = args[3:]
	}
	tw := s.store.TweakWithIdentifier(id)
	if tw == nil {
		return nil, nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return tw, rest, nil
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: list takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.open(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()

	items := s.store.Snapshot().Items
	if cfg.Overrides {
		var kept []store.Item
		for _, it := range items {
			if it.Source == store.SourceOverride {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	return newPrinter(cfg.MainConfig, cc.Out).items(items)
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := cfg.open(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()

	tw, rest, err := s.lookup(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, rest)
	}
	return newPrinter(cfg.MainConfig, cc.Out).detail(tw.Item())
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := cfg.open(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()

	tw, rest, err := s.lookup(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: set requires exactly one value", cli.ErrUsage)
	}
	v, err := value.Parse(tw.DefaultValue().Kind(), rest[0])
	if err != nil {
		return err
	}
	if err := tw.SetCurrentValue(v); err != nil {
		return err
	}
	return newPrinter(cfg.MainConfig, cc.Out).detail(tw.Item())
}

func reset(cfg *ResetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Reset.Parse(cc, args)
	if err != nil {
		cfg.Reset.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := cfg.open(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.All {
		if len(args) != 0 {
			return fmt.Errorf("%w: -a takes no tweak", cli.ErrUsage)
		}
		s.store.Reset()
		return newPrinter(cfg.MainConfig, cc.Out).items(s.store.Snapshot().Items)
	}
	tw, rest, err := s.lookup(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, rest)
	}
	if err := tw.Reset(); err != nil {
		return err
	}
	return newPrinter(cfg.MainConfig, cc.Out).detail(tw.Item())
}
