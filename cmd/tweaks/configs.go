package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Store string `cli:"name=s aliases=store desc='YAML file holding current values'"`
	Color bool   `cli:"name=color desc='print with color'"`
	JSON  bool   `cli:"name=j aliases=json desc='print items as JSON'"`

	Manifests []string

	Main *cli.Command
}

func (cfg *MainConfig) manifestOpt(_ *cli.Context, v string) (any, error) {
	cfg.Manifests = append(cfg.Manifests, v)
	return v, nil
}

// colors reports whether output to w is colored: -color forces it, otherwise terminals get
// color.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ListConfig struct {
	*MainConfig

	Overrides bool `cli:"name=o desc='only list tweaks with a current value'"`

	List *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type ResetConfig struct {
	*MainConfig

	All bool `cli:"name=a aliases=all desc='reset every tweak'"`

	Reset *cli.Command
}

type ServeConfig struct {
	*MainConfig

	Addr  string `cli:"name=addr desc='listen address (default :7070)'"`
	Token string `cli:"name=t aliases=token desc='access token required in the X-Access-Token header'"`

	Serve *cli.Command
}
