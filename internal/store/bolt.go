package store

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// Bucket layout: one bucket, two fixed keys.
var (
	bucketSync        = []byte("sync")           //nolint:gochecknoglobals // bbolt keys are byte slices
	keyLastSyncedAt   = []byte("last_synced_at") //nolint:gochecknoglobals // bbolt keys are byte slices
	keyLastSyncFailed = []byte("last_failed")    //nolint:gochecknoglobals // bbolt keys are byte slices
)

// BoltStore keeps the outcome in a bbolt database file.
type BoltStore struct {
	db     *bolt.DB
	logger zerolog.Logger
}

// OpenBolt opens (creating if needed) the database at path. Another process
// holding the file makes this fail after constants.LockTimeout.
func OpenBolt(path string, logger zerolog.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "create %s: %v", filepath.Dir(path), err)
	}

	db, err := bolt.Open(path, filePerm, &bolt.Options{Timeout: constants.LockTimeout})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "open %s: %v", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSync)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "init %s: %v", path, err)
	}

	return &BoltStore{db: db, logger: logger}, nil
}

// Read implements LastSync.
func (s *BoltStore) Read() domain.SyncOutcome {
	var outcome domain.SyncOutcome
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSync)
		if b == nil {
			return nil
		}
		if v := b.Get(keyLastSyncedAt); len(v) == 8 {
			outcome.LastSyncedAtMillis = int64(binary.BigEndian.Uint64(v)) //nolint:gosec // round-trips the value written by Record
		}
		if v := b.Get(keyLastSyncFailed); len(v) == 1 {
			outcome.Failed = v[0] == 1
		}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read last sync outcome")
		return domain.SyncOutcome{}
	}
	return outcome.Normalize()
}

// Record implements LastSync.
func (s *BoltStore) Record(ctx context.Context, outcome domain.SyncOutcome) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	outcome = outcome.Normalize()

	at := make([]byte, 8)
	binary.BigEndian.PutUint64(at, uint64(outcome.LastSyncedAtMillis)) //nolint:gosec // normalized, never negative
	failed := []byte{0}
	if outcome.Failed {
		failed[0] = 1
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSync)
		if err != nil {
			return err
		}
		if err := b.Put(keyLastSyncedAt, at); err != nil {
			return err
		}
		return b.Put(keyLastSyncFailed, failed)
	})
	if err != nil {
		return errors.Wrap(err, "failed to record sync outcome")
	}
	return nil
}

// Close implements LastSync.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
