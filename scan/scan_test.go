package scan

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

func quiet() Option { return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))) }

func connectTimeout(def float64) Record {
	return Record{
		Category:   "Network",
		Collection: "Timeouts",
		Name:       "Connect Timeout",
		Value:      def,
		Bounds:     [2]any{1.0, 30.0},
		Signature:  SigDouble,
	}
}

func TestSignatureOf(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{true, SigBool},
		{3, SigLongLong},
		{int8(3), SigLongLong},
		{uint16(3), SigUnsignedLL},
		{float32(1), SigFloat},
		{1.5, SigDouble},
		{"x", SigObject},
		{[]string{"a"}, SigObject},
		{map[string]int{"a": 1}, SigObject},
		{func() {}, SigAction},
		{value.Int(1), SigLongLong},
		{value.Uint(1), SigUnsignedLL},
		{value.Float(1), SigDouble},
		{value.String("x"), SigObject},
		{value.Action(func() {}), SigAction},
		{nil, ""},
		{struct{}{}, ""},
		{value.None(), ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SignatureOf(tc.in), "%#v", tc.in)
	}
}

func TestDecodePayload(t *testing.T) {
	cases := []struct {
		sig  string
		in   any
		want value.Value
	}{
		{SigBool, true, value.Bool(true)},
		{SigChar, int8(1), value.Bool(true)},
		{SigInt, int32(-4), value.Int(-4)},
		{SigLongLong, uint8(7), value.Int(7)},
		{SigUnsignedInt, uint32(4), value.Uint(4)},
		{SigUnsignedLL, 9, value.Uint(9)},
		{SigFloat, float32(0.5), value.Float(0.5)},
		{SigDouble, 3, value.Float(3)},
		{SigCString, "hi", value.String("hi")},
		{SigConstCString, []byte("hi"), value.String("hi")},
		{SigObject, "hi", value.String("hi")},
		{SigObject, []any{"a", 1}, value.Array(value.String("a"), value.Int(1))},
		{SigDouble, value.Float(2.5), value.Float(2.5)},
	}
	for _, tc := range cases {
		got, err := decodePayload(tc.sig, tc.in)
		require.NoError(t, err, "%s %#v", tc.sig, tc.in)
		assert.True(t, value.Equal(tc.want, got), "%s %#v: got %v", tc.sig, tc.in, got)
	}

	bad := []struct {
		sig string
		in  any
	}{
		{SigBool, 1},
		{SigInt, "1"},
		{SigUnsignedInt, -1},
		{SigDouble, "1.5"},
		{SigCString, 1},
		{SigObject, 1},
		{SigObject, []any{func() {}}},
		{SigAction, nil},
		{SigAction, value.Int(1)},
		{"v", 1},
	}
	for _, tc := range bad {
		_, err := decodePayload(tc.sig, tc.in)
		assert.Error(t, err, "%s %#v", tc.sig, tc.in)
	}
}

func TestDecodeBounds(t *testing.T) {
	c, err := decodeBounds(SigDouble, [2]any{1, 30})
	require.NoError(t, err)
	assert.Equal(t, "[1, 30]", c.String())

	c, err = decodeBounds(SigObject, []string{"fast", "slow"})
	require.NoError(t, err)
	assert.True(t, c.Contains(value.String("slow")))

	c, err = decodeBounds(SigObject, map[string]any{"low": 1, "high": 10})
	require.NoError(t, err)
	m, ok := c.(value.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"high", "low"}, m.Keys())

	c, err = decodeBounds(SigDouble, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = decodeBounds(SigLongLong, [2]any{1.0, 30.0})
	require.NoError(t, err)
	r, ok := c.(value.NumericRange)
	require.True(t, ok)
	assert.Equal(t, value.KindInt, r.Min().Kind(), "whole float bounds take the default's variant")
	assert.Equal(t, value.KindInt, r.Max().Kind())

	c, err = decodeBounds(SigUnsignedLL, [2]any{0.5, 10})
	require.NoError(t, err)
	r = c.(value.NumericRange)
	assert.Equal(t, value.KindFloat, r.Min().Kind(), "fractional bounds stay floats")
	assert.Equal(t, value.KindUint, r.Max().Kind())
	assert.True(t, r.Contains(value.Uint(1)))
	assert.False(t, r.Contains(value.Uint(0)))

	_, err = decodeBounds(SigLongLong, [2]any{"1", 30})
	require.Error(t, err)
	_, err = decodeBounds(SigDouble, [2]any{"a", 1})
	require.Error(t, err)
	_, err = decodeBounds(SigDouble, 5)
	require.Error(t, err)
}

func TestMaterialize(t *testing.T) {
	sc := New(store.New(), quiet())
	tw, err := sc.Materialize(connectTimeout(5))
	require.NoError(t, err)
	require.NotNil(t, tw)

	assert.Equal(t, "Connect Timeout", tw.Name())
	assert.Equal(t, store.Identifier("Network", "Timeouts", "Connect Timeout"), tw.Identifier())
	assert.Equal(t, 5.0, store.Typed(tw, 0.0))
	require.ErrorIs(t, tw.SetCurrentValue(value.Float(45)), store.ErrOutOfRange)

	again, err := sc.Materialize(connectTimeout(5))
	require.NoError(t, err)
	assert.Same(t, tw, again, "identical declarations resolve to the same tweak")
	assert.Empty(t, sc.Report().Duplicates)
	assert.Equal(t, 1, sc.Report().Materialized)
}

func TestMaterializeMixedNumericBounds(t *testing.T) {
	sc := New(store.New(), quiet())
	tw, err := sc.Materialize(Record{
		Category: "Network", Collection: "Retries", Name: "Count",
		Value: 5, Bounds: [2]any{1.0, 30.0}, Signature: SignatureOf(5),
	})
	require.NoError(t, err)
	require.NotNil(t, tw)
	assert.Equal(t, 5, store.Typed(tw, 0))
	assert.True(t, value.Equal(value.Int(1), tw.MinimumValue()))
	require.NoError(t, tw.SetCurrentValue(value.Int(30)))
	require.ErrorIs(t, tw.SetCurrentValue(value.Int(31)), store.ErrOutOfRange)
}

func TestMaterializeUndecodableResolvesExisting(t *testing.T) {
	sc := New(store.New(), quiet())
	tw, err := sc.Materialize(connectTimeout(5))
	require.NoError(t, err)

	bad := connectTimeout(5)
	bad.Bounds = [2]any{"one", "thirty"}
	again, err := sc.Materialize(bad)
	require.ErrorIs(t, err, ErrUnrecognizedMetadata)
	assert.Same(t, tw, again)

	missing := bad
	missing.Name = "Read Timeout"
	none, err := sc.Materialize(missing)
	require.ErrorIs(t, err, ErrUnrecognizedMetadata)
	assert.Nil(t, none)
}

func TestConflictingDeclarationFirstWins(t *testing.T) {
	var logs bytes.Buffer
	sc := New(store.New(),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithRecords(connectTimeout(5), connectTimeout(10)),
	)
	rep := sc.Scan()
	assert.Equal(t, 1, rep.Materialized)
	require.Len(t, rep.Duplicates, 1)
	require.ErrorIs(t, rep.Duplicates[0], store.ErrDuplicateIdentifier)
	assert.Empty(t, rep.Skipped)

	tw := sc.Lookup("Network", "Timeouts", "Connect Timeout")
	require.NotNil(t, tw)
	assert.Equal(t, 5.0, store.Typed(tw, 0.0))
	assert.Contains(t, logs.String(), "conflicting declaration")

	// Re-evaluating the conflicting site resolves to the first tweak and is reported once.
	again, err := sc.Materialize(connectTimeout(10))
	require.ErrorIs(t, err, store.ErrDuplicateIdentifier)
	assert.Same(t, tw, again)
	assert.Len(t, sc.Report().Duplicates, 1)
}

func TestConflictingConstraintsDetected(t *testing.T) {
	server := func(url string) Record {
		return Record{
			Category: "Network", Collection: "Sync", Name: "Server",
			Value:     "prod",
			Bounds:    map[string]any{"prod": url},
			Signature: SigObject,
		}
	}
	level := func(choice any) Record {
		return Record{
			Category: "Network", Collection: "Sync", Name: "Level",
			Value:     1,
			Bounds:    []any{1, choice},
			Signature: SigLongLong,
		}
	}
	sc := New(store.New(), quiet(), WithRecords(
		server("https://api.example.com"),
		server("https://other.example.com"),
		server("https://third.example.com"),
		level(2),
		level("2"),
	))
	rep := sc.Scan()
	assert.Equal(t, 2, rep.Materialized)
	require.Len(t, rep.Duplicates, 3)
	for _, err := range rep.Duplicates {
		assert.ErrorIs(t, err, store.ErrDuplicateIdentifier)
	}
	tw := sc.Lookup("Network", "Sync", "Server")
	require.NotNil(t, tw)
	assert.Equal(t, "https://api.example.com", store.MappedValue(tw, ""))
}

func TestUnrecognizedRecordsSkipped(t *testing.T) {
	recs := []Record{
		{Category: "A", Collection: "B", Name: "", Value: 1, Signature: SigLongLong},
		{Category: "A", Collection: "B", Name: "bad", Value: "x", Signature: SigDouble},
		{Category: "A", Collection: "B", Name: "action", Value: func() {}, Bounds: []any{1}, Signature: SigAction},
		{Category: "A", Collection: "B", Name: "out", Value: 50.0, Bounds: [2]any{1.0, 30.0}, Signature: SigDouble},
		{Category: "A", Collection: "B", Name: "good", Value: 1, Signature: SigLongLong},
	}
	sc := New(store.New(), quiet(), WithRecords(recs...))
	rep := sc.Scan()
	assert.Equal(t, 1, rep.Materialized)
	require.Len(t, rep.Skipped, 4)
	for _, err := range rep.Skipped[:3] {
		assert.ErrorIs(t, err, ErrUnrecognizedMetadata)
	}
	assert.ErrorIs(t, rep.Skipped[3], store.ErrOutOfRange)
	assert.NotNil(t, sc.Lookup("A", "B", "good"))
	assert.Nil(t, sc.Lookup("A", "B", "bad"))
}

func TestScanRunsOnce(t *testing.T) {
	s := store.New()
	sc := New(s, quiet(), WithRecords(connectTimeout(5)))
	first := sc.Scan()
	second := sc.Scan()
	assert.Equal(t, first, second)
	assert.Len(t, s.Tweaks(), 1)
}

func TestScanConcurrentFirstCall(t *testing.T) {
	const n = 50
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{
			Category:   "Load",
			Collection: fmt.Sprintf("Group %d", i%5),
			Name:       fmt.Sprintf("Tweak %d", i),
			Value:      int64(i),
			Signature:  SigLongLong,
		}
	}
	s := store.New()
	sc := New(s, quiet(), WithRecords(recs...))

	var wg sync.WaitGroup
	reports := make([]Report, 16)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = sc.Scan()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Tweaks(), n)
	assert.Equal(t, n, sc.Report().Materialized)
	for _, rep := range reports {
		assert.Equal(t, n, rep.Materialized, "every caller sees the completed scan")
		assert.Empty(t, rep.Skipped)
		assert.Empty(t, rep.Duplicates)
	}
}

func TestActionRecord(t *testing.T) {
	calls := 0
	sc := New(store.New(), quiet())
	tw, err := sc.Materialize(Record{
		Category: "Debug", Collection: "Cache", Name: "Clear",
		Value: func() { calls++ }, Signature: SigAction,
	})
	require.NoError(t, err)
	require.True(t, tw.IsAction())
	require.NoError(t, tw.Perform())
	assert.Equal(t, 1, calls)

	// A second action under the same identifier is the same declaration.
	again, err := sc.Materialize(Record{
		Category: "Debug", Collection: "Cache", Name: "Clear",
		Value: func() {}, Signature: SigAction,
	})
	require.NoError(t, err)
	assert.Same(t, tw, again)
}

func TestDeclaredTable(t *testing.T) {
	before := len(Declared())
	Declare(Record{Category: "Table", Collection: "Test", Name: "Eager", Value: true, Signature: SigBool})
	DeclareFunc(func() Record {
		return Record{Category: "Table", Collection: "Test", Name: "Lazy", Value: 2, Signature: SigLongLong}
	})
	DeclareFunc(nil)

	recs := Declared()
	require.Len(t, recs, before+2)
	assert.Equal(t, "Eager", recs[before].Name)
	assert.Equal(t, "Lazy", recs[before+1].Name)

	s := store.New()
	rep := New(s, quiet()).Scan()
	assert.GreaterOrEqual(t, rep.Materialized, 2)
	assert.NotNil(t, s.TweakWithIdentifier(store.Identifier("Table", "Test", "Lazy")))
}

func TestRecordString(t *testing.T) {
	assert.Equal(t, "Network/Timeouts/Connect Timeout (d)", connectTimeout(5).String())
	assert.Equal(t, "tweak:Network/Timeouts/Connect%20Timeout", connectTimeout(5).Identifier())
}
