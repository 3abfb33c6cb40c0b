package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evan-idocoding/tweaks/scan"
	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

const network = `
category "Network" {
  collection "Timeouts" {
    tweak "Connect Timeout" {
      type    = "float"
      default = 5
      min     = 1
      max     = 30
    }
    tweak "Retries" {
      default = 3
    }
  }
  collection "Endpoints" {
    tweak "Server" {
      default = "prod"
      mapping = {
        prod    = "https://api.example.com"
        staging = "https://staging.example.com"
      }
    }
    tweak "Mode" {
      default = "fast"
      choices = ["fast", "slow"]
    }
    tweak "Verbose" {
      default = false
    }
  }
}
`

func TestParse(t *testing.T) {
	recs, err := NewLoader().Parse("network.hcl", []byte(network))
	require.NoError(t, err)
	require.Len(t, recs, 5)

	ct := recs[0]
	assert.Equal(t, "Network", ct.Category)
	assert.Equal(t, "Timeouts", ct.Collection)
	assert.Equal(t, "Connect Timeout", ct.Name)
	assert.Equal(t, scan.SigDouble, ct.Signature)
	assert.True(t, value.Equal(value.Float(5), ct.Value.(value.Value)))
	r, ok := ct.Bounds.(value.NumericRange)
	require.True(t, ok)
	assert.True(t, value.Equal(value.Float(1), r.Min()))
	assert.True(t, value.Equal(value.Float(30), r.Max()))

	assert.Equal(t, scan.SigLongLong, recs[1].Signature)
	assert.Nil(t, recs[1].Bounds)

	m, ok := recs[2].Bounds.(value.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"prod", "staging"}, m.Keys())
	url, ok := m.Lookup("staging")
	require.True(t, ok)
	assert.Equal(t, "https://staging.example.com", url.String())

	c, ok := recs[3].Bounds.(value.Choices)
	require.True(t, ok)
	assert.Equal(t, "one of [fast, slow]", c.String())

	assert.Equal(t, scan.SigBool, recs[4].Signature)
}

func TestParsedRecordsMaterialize(t *testing.T) {
	recs, err := NewLoader().Parse("network.hcl", []byte(network))
	require.NoError(t, err)

	sc := scan.New(store.New(), scan.WithRecords(recs...))
	rep := sc.Scan()
	assert.Equal(t, 5, rep.Materialized)
	assert.Empty(t, rep.Skipped)

	tw := sc.Lookup("Network", "Timeouts", "Connect Timeout")
	require.NotNil(t, tw)
	require.NoError(t, tw.SetCurrentValue(value.Float(12.5)))
	require.ErrorIs(t, tw.SetCurrentValue(value.Float(45)), store.ErrOutOfRange)
	assert.Equal(t, 12.5, store.Typed(tw, 0.0))

	mode := sc.Lookup("Network", "Endpoints", "Mode")
	require.ErrorIs(t, mode.SetCurrentValue(value.String("medium")), store.ErrOutOfRange)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":         `category "A" {`,
		"missing label":  `category { }`,
		"missing default": `
category "A" {
  collection "B" {
    tweak "C" {}
  }
}`,
		"null default": `
category "A" {
  collection "B" {
    tweak "C" { default = null }
  }
}`,
		"bad type": `
category "A" {
  collection "B" {
    tweak "C" {
      type    = "action"
      default = 1
    }
  }
}`,
		"unconvertible default": `
category "A" {
  collection "B" {
    tweak "C" {
      type    = "int"
      default = "many"
    }
  }
}`,
		"min without max": `
category "A" {
  collection "B" {
    tweak "C" {
      default = 1
      min     = 0
    }
  }
}`,
		"two constraints": `
category "A" {
  collection "B" {
    tweak "C" {
      default = 1
      min     = 0
      max     = 2
      choices = [1, 2]
    }
  }
}`,
		"choices not a list": `
category "A" {
  collection "B" {
    tweak "C" {
      default = 1
      choices = 1
    }
  }
}`,
		"mapping not an object": `
category "A" {
  collection "B" {
    tweak "C" {
      default = "a"
      mapping = ["a"]
    }
  }
}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader().Parse(name+".hcl", []byte(src))
			require.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.hcl")
	b := filepath.Join(dir, "b.hcl")
	require.NoError(t, os.WriteFile(a, []byte(network), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(`
category "Appearance" {
  collection "Colors" {
    tweak "Tint" {
      default = "blue"
    }
  }
}`), 0o600))

	recs, err := Load(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, "Tint", recs[5].Name)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.ErrorIs(t, err, ErrInvalidManifest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, a)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvert(t *testing.T) {
	v, err := convert(value.Int(5), value.KindFloat)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Float(5), v))

	v, err = convert(value.Int(5), value.KindString)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.String("5"), v))

	_, err = convert(value.Int(-1), value.KindUint)
	require.Error(t, err)

	_, err = convert(value.Int(1), value.KindArray)
	require.ErrorIs(t, err, value.ErrTypeMismatch)
}
