package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laudos-api/config"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/user"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestNew_Disabled(t *testing.T) {
	rdb, err := New(context.Background(), zap.NewNop(), config.Redis{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNew_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := New(context.Background(), zap.NewNop(), config.Redis{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	_ = rdb.Close()
}

func TestRevoker(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	r := NewRevoker(rdb, time.Hour)

	doc := access.Claims{UserID: "u", UserType: user.TypeDoctor, Role: user.RoleDoctor, DoctorID: "d-1"}
	pat := access.Claims{UserID: "v", UserType: user.TypePatient, PatientID: "p-1"}

	revoked, err := r.IsRevoked(ctx, doc)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, SubjectDoctor, "d-1"))
	revoked, err = r.IsRevoked(ctx, doc)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Hour, mr.TTL("revoked:doctor:d-1"))

	revoked, err = r.IsRevoked(ctx, pat)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Clear(ctx, SubjectDoctor, "d-1"))
	revoked, err = r.IsRevoked(ctx, doc)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, SubjectPatient, "p-1"))
	mr.FastForward(2 * time.Hour)
	revoked, err = r.IsRevoked(ctx, pat)
	require.NoError(t, err)
	assert.False(t, revoked, "entry must expire with the session window")
}

func TestRevoker_NilClientIsNoop(t *testing.T) {
	r := NewRevoker(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, SubjectDoctor, "d"))
	require.NoError(t, r.Clear(ctx, SubjectDoctor, "d"))
	revoked, err := r.IsRevoked(ctx, access.Claims{DoctorID: "d"})
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	l := NewRateLimiter(rdb, 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "rl:login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, retry, err := l.Allow(ctx, "rl:login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, retry > 0 && retry <= time.Minute)

	other, _, err := l.Allow(ctx, "rl:login:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other)

	mr.FastForward(time.Minute + time.Second)
	ok, _, err = l.Allow(ctx, "rl:login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.Reset(ctx, "rl:login:1.2.3.4"))
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	ctx := context.Background()

	ok, _, err := NewRateLimiter(nil, 1, time.Minute).Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	mr, rdb := newRedis(t)
	l := NewRateLimiter(rdb, 1, time.Minute)
	mr.Close()

	ok, _, err = l.Allow(ctx, "k")
	assert.Error(t, err)
	assert.True(t, ok)
}
