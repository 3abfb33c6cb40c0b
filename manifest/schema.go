package manifest

import "github.com/hashicorp/hcl/v2"

// fileConfig is the top-level structure of a manifest file.
type fileConfig struct {
	Categories []categoryConfig `hcl:"category,block"`
}

type categoryConfig struct {
	Name        string             `hcl:"name,label"`
	Collections []collectionConfig `hcl:"collection,block"`
}

type collectionConfig struct {
	Name   string        `hcl:"name,label"`
	Tweaks []tweakConfig `hcl:"tweak,block"`
}

// tweakConfig declares one tweak. Optional attributes are kept as expressions; a missing
// one evaluates to null.
type tweakConfig struct {
	Name    string         `hcl:"name,label"`
	Type    *string        `hcl:"type,optional"`
	Default hcl.Expression `hcl:"default"`
	Min     hcl.Expression `hcl:"min,optional"`
	Max     hcl.Expression `hcl:"max,optional"`
	Choices hcl.Expression `hcl:"choices,optional"`
	Mapping hcl.Expression `hcl:"mapping,optional"`
}
