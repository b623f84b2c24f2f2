package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/slab"
)

func scenario() slab.Input {
	return slab.Input{
		Span:           5000,
		Thickness:      200,
		DeadLoad:       2,
		LiveLoad:       5,
		CoverThickness: 20,
		Support:        slab.BothEnds,
		ConcreteGrade:  "C30",
		SteelGrade:     "420",
	}
}

func openStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func save(t *testing.T, s *Store, id code.ID, in slab.Input) Record {
	t.Helper()
	r, err := slab.Design(id, in)
	require.NoError(t, err)
	rec, err := s.Save(context.Background(), in, r)
	require.NoError(t, err)
	return rec
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}
}

func TestSaveAndGet(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.FixedZone("PHT", 8*3600))
	s := openStore(t, WithClock(func() time.Time { return at }))

	rec := save(t, s, code.ACI, scenario())
	assert.Len(t, rec.ID, 36)
	assert.Equal(t, design.Slab, rec.Member)
	assert.True(t, rec.Pass)

	got, err := s.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Equal(t, code.ACI, got.Code)
	assert.JSONEq(t, string(rec.Input), string(got.Input))

	var in slab.Input
	require.NoError(t, json.Unmarshal(got.Input, &in))
	assert.Equal(t, scenario(), in)

	var r design.Result
	require.NoError(t, json.Unmarshal(got.Result, &r))
	assert.Equal(t, design.Slab, r.Member)
	assert.True(t, r.Pass)
}

func TestGetByPrefix(t *testing.T) {
	s := openStore(t)
	rec := save(t, s, code.ACI, scenario())

	got, err := s.Get(context.Background(), rec.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = s.Get(context.Background(), "ffffffff-0000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAmbiguousPrefix(t *testing.T) {
	s := openStore(t)
	save(t, s, code.ACI, scenario())
	save(t, s, code.CSA, scenario())

	// UUIDv7 ids created in the same run share their timestamp prefix.
	_, err := s.Get(context.Background(), "0")
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first := save(t, s, code.ACI, scenario())
	thin := scenario()
	thin.Span, thin.Thickness = 4000, 150
	second := save(t, s, code.CSA, thin)

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	limited, err := s.List(ctx, design.Slab, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)

	none, err := s.List(ctx, design.Beam, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
