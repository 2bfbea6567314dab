package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

var (
	playersBucket = []byte("players")
	setsBucket    = []byte("sets")
	metaBucket    = []byte("meta")

	totSetsKey = []byte("tot_sets")
)

// Storage keeps players and sets in separate bolt buckets keyed by ordinal
// and recording index
type Storage struct {
	db *bolt.DB
}

// New opens (or creates) the bolt database at path
func New(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}

	return &Storage{db: db}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Close() error {
	return errors.Wrap(s.db.Close(), "unable to close database")
}

func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil {
			return model.ErrStateNotFound
		}

		tot, err := strconv.ParseInt(string(meta.Get(totSetsKey)), 10, 32)
		if err != nil {
			return errors.Wrapf(model.ErrCorruptState, "tot_sets: %v", err)
		}
		snap.TotalSets = int32(tot)

		if err := readRows(tx.Bucket(playersBucket), &snap.Players); err != nil {
			return errors.Wrap(err, "unable to read players")
		}
		return errors.Wrap(readRows(tx.Bucket(setsBucket), &snap.Sets), "unable to read sets")
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// readRows decodes every value of b in key order. Keys are big-endian
// indexes, so key order is ordinal / recording order.
func readRows[T any](b *bolt.Bucket, rows *[]T) error {
	if b == nil {
		return errors.Wrap(model.ErrCorruptState, "bucket missing")
	}

	return b.ForEach(func(k, v []byte) error {
		var row T
		if err := json.Unmarshal(v, &row); err != nil {
			return errors.Wrapf(model.ErrCorruptState, "unable to unmarshal row %x: %v", k, err)
		}
		*rows = append(*rows, row)
		return nil
	})
}

func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{playersBucket, setsBucket, metaBucket} {
			if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
				return errors.Wrapf(err, "unable to clear bucket %s", name)
			}
		}

		players, err := tx.CreateBucket(playersBucket)
		if err != nil {
			return errors.Wrap(err, "unable to create bucket")
		}
		for i, p := range snap.Players {
			if err := put(players, i, p); err != nil {
				return err
			}
		}

		sets, err := tx.CreateBucket(setsBucket)
		if err != nil {
			return errors.Wrap(err, "unable to create bucket")
		}
		for i, row := range snap.Sets {
			if err := put(sets, i, row); err != nil {
				return err
			}
		}

		meta, err := tx.CreateBucket(metaBucket)
		if err != nil {
			return errors.Wrap(err, "unable to create bucket")
		}
		tot := strconv.FormatInt(int64(snap.TotalSets), 10)
		return errors.Wrap(meta.Put(totSetsKey, []byte(tot)), "error putting tot_sets")
	})

	return errors.Wrap(err, "unable to save snapshot")
}

func put(b *bolt.Bucket, index int, row any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return errors.Wrap(err, "unable to marshal row into json")
	}

	err = b.Put(itob(index), data)
	return errors.Wrap(err, "error putting row")
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
