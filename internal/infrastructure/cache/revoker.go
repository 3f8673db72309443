package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"laudos-api/internal/domain/access"
)

const (
	SubjectDoctor  = "doctor"
	SubjectPatient = "patient"
)

// Revoker keeps a deny-list of deactivated profiles for as long as a session
// issued before the deactivation could still be valid.
type Revoker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRevoker(rdb *redis.Client, sessionTTL time.Duration) *Revoker {
	return &Revoker{rdb: rdb, ttl: sessionTTL}
}

func key(subject, id string) string { return "revoked:" + subject + ":" + id }

func (r *Revoker) Revoke(ctx context.Context, subject, id string) error {
	if r == nil || r.rdb == nil || id == "" {
		return nil
	}
	return r.rdb.Set(ctx, key(subject, id), time.Now().UTC().Unix(), r.ttl).Err()
}

func (r *Revoker) Clear(ctx context.Context, subject, id string) error {
	if r == nil || r.rdb == nil || id == "" {
		return nil
	}
	return r.rdb.Del(ctx, key(subject, id)).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, c access.Claims) (bool, error) {
	if r == nil || r.rdb == nil {
		return false, nil
	}

	var k string
	switch {
	case c.DoctorID != "":
		k = key(SubjectDoctor, c.DoctorID)
	case c.PatientID != "":
		k = key(SubjectPatient, c.PatientID)
	default:
		return false, nil
	}

	n, err := r.rdb.Exists(ctx, k).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
