package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRegistry_AddPreservesOrderAndIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Registry.Add(ctx, "3"))
	require.NoError(t, s.Registry.Add(ctx, "5"))
	require.NoError(t, s.Registry.Add(ctx, "7"))
	// duplicate keeps original position
	require.NoError(t, s.Registry.Add(ctx, "3"))

	ids, err := s.Registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "5", "7"}, ids)
}

func TestRegistry_Remove(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Registry.Add(ctx, "a"))
	require.NoError(t, s.Registry.Add(ctx, "b"))
	require.NoError(t, s.Registry.Remove(ctx, "a"))
	// absent id is a no-op
	require.NoError(t, s.Registry.Remove(ctx, "zzz"))

	ids, err := s.Registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

func TestCache_RoundTripAndDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	fetched := time.Now().Truncate(time.Millisecond)
	require.NoError(t, s.Cache.Set(ctx, "1", []byte(`{"id":"1"}`), fetched))

	entry, err := s.Cache.Get(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []byte(`{"id":"1"}`), entry.Payload)
	assert.Equal(t, fetched.UnixMilli(), entry.FetchedAt.UnixMilli())

	// overwrite bumps the payload
	require.NoError(t, s.Cache.Set(ctx, "1", []byte(`{"id":"1","name":"x"}`), fetched.Add(time.Minute)))
	entry, err = s.Cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, string(entry.Payload), "name")

	require.NoError(t, s.Cache.Delete(ctx, "1"))
	entry, err = s.Cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMetadata_GetSetDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	v, err := s.Metadata.Get(ctx, MetaActiveProfile)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Metadata.Set(ctx, MetaActiveProfile, []byte("42")))
	v, err = s.Metadata.Get(ctx, MetaActiveProfile)
	require.NoError(t, err)
	assert.Equal(t, []byte("42"), v)

	require.NoError(t, s.Metadata.Delete(ctx, MetaActiveProfile))
	v, err = s.Metadata.Get(ctx, MetaActiveProfile)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestWithTx_RollsBackAllRepos(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Registry.Add(ctx, "1"))
	require.NoError(t, s.Metadata.Set(ctx, MetaActiveProfile, []byte("1")))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, r *Repos) error {
		if err := r.Registry.Remove(ctx, "1"); err != nil {
			return err
		}
		if err := r.Metadata.Delete(ctx, MetaActiveProfile); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	ids, err := s.Registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)
	v, err := s.Metadata.Get(ctx, MetaActiveProfile)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}
