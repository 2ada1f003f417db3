package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/household-server/internal/storage/kv"
)

func TestGet_Missing(t *testing.T) {
	_, err := New().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSetGet_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := New()

	value := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "a", value))
	value[1] = '2'

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	got[1] = '3'
	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(again))
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := New()

	var seen []string
	unsubscribe, err := s.Subscribe(ctx, "a", func(b []byte) { seen = append(seen, string(b)) })
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", []byte("one")))
	require.NoError(t, s.Set(ctx, "b", []byte("other path")))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Set(ctx, "a", []byte("two")))

	assert.Equal(t, []string{"one"}, seen)
}

func TestSubscribe_CallbackMayWrite(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Subscribe(ctx, "a", func(b []byte) {
		_ = s.Set(ctx, "mirror", b)
	})
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", []byte("x")))
	got, err := s.Get(ctx, "mirror")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	assert.ErrorIs(t, s.Set(ctx, "a", nil), context.Canceled)
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetMany_NotifiesAfterAllWritten(t *testing.T) {
	ctx := context.Background()
	s := New()

	var seenB string
	_, err := s.Subscribe(ctx, "a", func([]byte) {
		b, err := s.Get(ctx, "b")
		require.NoError(t, err)
		seenB = string(b)
	})
	require.NoError(t, err)

	require.NoError(t, s.SetMany(ctx, []kv.Entry{
		{Path: "a", Value: []byte("1")},
		{Path: "b", Value: []byte("2")},
	}))
	assert.Equal(t, "2", seenB)
}

func TestSetMany_CanceledWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()

	err := s.SetMany(ctx, []kv.Entry{{Path: "a", Value: []byte("1")}})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Get(context.Background(), "a")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
