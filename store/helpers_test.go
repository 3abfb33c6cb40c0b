package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evan-idocoding/tweaks/value"
)

// build adds t under category/collection of s, creating the nodes on demand.
func build(tb testing.TB, s *Store, category, collection string, t *Tweak) *Tweak {
	tb.Helper()
	cat := s.TweakCategoryWithName(category)
	if cat == nil {
		cat = NewCategory(category)
		require.NoError(tb, s.AddTweakCategory(cat))
	}
	col := cat.TweakCollectionWithName(collection)
	if col == nil {
		col = NewCollection(collection)
		require.NoError(tb, cat.AddTweakCollection(col))
	}
	require.NoError(tb, col.AddTweak(t))
	return t
}

func connectTimeout(tb testing.TB) *Tweak {
	tb.Helper()
	r, err := value.NewRange(value.Float(1), value.Float(30))
	require.NoError(tb, err)
	t, err := NewTweak(Identifier("Network", "Timeouts", "Connect Timeout"),
		WithName("Connect Timeout"),
		WithDefault(value.Float(5)),
		WithPossibleValues(r),
	)
	require.NoError(tb, err)
	return t
}
