package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "m",
		Aliases:     []string{"manifest"},
		Description: "HCL manifest declaring tweaks (repeatable)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.manifestOpt), "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "tweaks").
		WithSynopsis("tweaks [-m manifest.hcl]... [-s store.yaml] command [opts]").
		WithDescription("tweaks inspects and edits the tweaks declared by manifests.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tweaksMain(cfg, cc, args)
		}).
		WithSubs(
			ListCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			ResetCommand(cfg),
			ServeCommand(cfg))
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithOpts(opts...).
		WithSynopsis("list [-o]").
		WithDescription("list tweaks with their current and default values").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <identifier | category collection name>").
		WithDescription("show one tweak").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithSynopsis("set <identifier | category collection name> <value>").
		WithDescription("set the current value of a tweak and persist it").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func ResetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Reset, "reset").
		WithOpts(opts...).
		WithSynopsis("reset [-a] [identifier | category collection name]").
		WithDescription("revert tweaks to their defaults").
		WithRun(func(cc *cli.Context, args []string) error {
			return reset(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithOpts(opts...).
		WithSynopsis("serve -t token [-addr :7070]").
		WithDescription("serve the tweaks over HTTP for operators").
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
