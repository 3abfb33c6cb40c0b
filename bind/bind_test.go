package bind

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

type client struct {
	timeout float64
	name    string
	_       [4]int64
}

func setTimeout(c *client, v float64) { c.timeout = v }

func connectTimeout(t *testing.T) *store.Tweak {
	t.Helper()
	r, err := value.NewRange(value.Float(1), value.Float(30))
	require.NoError(t, err)
	tw, err := store.NewTweak(store.Identifier("Network", "Timeouts", "Connect Timeout"),
		store.WithDefault(value.Float(5)),
		store.WithPossibleValues(r),
	)
	require.NoError(t, err)
	return tw
}

func TestBindFollowsTweak(t *testing.T) {
	tw := connectTimeout(t)
	c := &client{}
	b, err := Bind(tw, c, setTimeout)
	require.NoError(t, err)
	assert.Same(t, tw, b.Tweak())
	assert.Equal(t, 5.0, c.timeout, "set is called right away")

	require.NoError(t, tw.SetCurrentValue(value.Float(12.5)))
	assert.Equal(t, 12.5, c.timeout)

	require.Error(t, tw.SetCurrentValue(value.Float(45)))
	assert.Equal(t, 12.5, c.timeout)

	require.NoError(t, tw.Reset())
	assert.Equal(t, 5.0, c.timeout)
	runtime.KeepAlive(c)
}

func TestUnbind(t *testing.T) {
	tw := connectTimeout(t)
	c := &client{}
	b, err := Bind(tw, c, setTimeout)
	require.NoError(t, err)
	require.Equal(t, 1, tw.ObserverCount())

	b.Unbind()
	b.Unbind()
	assert.Equal(t, 0, tw.ObserverCount())

	require.NoError(t, tw.SetCurrentValue(value.Float(20)))
	assert.Equal(t, 5.0, c.timeout)

	var nilBinding *Binding
	nilBinding.Unbind()
	runtime.KeepAlive(c)
}

func TestBindFallback(t *testing.T) {
	tw, err := store.NewTweak("name", store.WithDefault(value.String("api")))
	require.NoError(t, err)
	c := &client{}
	_, err = BindFallback(tw, c, func(c *client, v float64) { c.timeout = v }, -1)
	require.NoError(t, err)
	assert.Equal(t, -1.0, c.timeout, "string default does not convert to float64")

	_, err = Bind(tw, c, func(c *client, v string) { c.name = v })
	require.NoError(t, err)
	assert.Equal(t, "api", c.name)
	runtime.KeepAlive(c)
}

func TestBindRejects(t *testing.T) {
	tw := connectTimeout(t)
	act, err := store.NewAction("act", "", func() {})
	require.NoError(t, err)

	_, err = Bind(nil, &client{}, setTimeout)
	require.ErrorIs(t, err, store.ErrInvalidOperation)
	_, err = Bind[client](tw, nil, setTimeout)
	require.ErrorIs(t, err, store.ErrInvalidOperation)
	_, err = Bind[client, float64](tw, &client{}, nil)
	require.ErrorIs(t, err, store.ErrInvalidOperation)
	_, err = Bind(act, &client{}, setTimeout)
	require.ErrorIs(t, err, store.ErrInvalidOperation)
	assert.Equal(t, 0, tw.ObserverCount())
}

func TestBindReleasedWithTarget(t *testing.T) {
	tw := connectTimeout(t)
	func() {
		c := &client{}
		_, err := Bind(tw, c, setTimeout)
		require.NoError(t, err)
	}()
	require.Equal(t, 1, tw.ObserverCount())

	require.Eventually(t, func() bool {
		runtime.GC()
		return tw.ObserverCount() == 0
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, tw.SetCurrentValue(value.Float(7)))
}
