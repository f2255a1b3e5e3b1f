// Package backup keeps copies of codeplug images in a local pebble database
// so an update can be undone.
//
// Every snapshot is stored under a KSUID, which sorts by creation time, and
// carries the path the image was read from. Stored frames are CRC-checked on
// every read.
package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Errors
var (
	ErrNotFound = &Error{"snapshot not found"}
	ErrCorrupt  = &Error{"snapshot corrupt"}
)

// Error represents a backup store error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var keyPrefix = []byte("snap/")

func snapshotKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, keyPrefix...), id.Bytes()...)
}

// Info describes a stored snapshot.
type Info struct {
	ID      ksuid.KSUID
	Path    string
	Size    int
	Created time.Time
}

// Snapshot is a stored image.
type Snapshot struct {
	Info
	Data []byte
}

// Store is a snapshot database. It is safe for concurrent use.
type Store struct {
	db  *pebble.DB
	now func() time.Time
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open backup store: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Create stores data read from path and returns the new snapshot's ID.
func (s *Store) Create(path string, data []byte) (ksuid.KSUID, error) {
	now := s.now()
	id, err := ksuid.NewRandomWithTime(now)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to generate snapshot id: %w", err)
	}
	if err := s.db.Set(snapshotKey(id), newFrame(path, data, now).encode(), pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return id, nil
}

// Read returns the snapshot with the given ID.
func (s *Store) Read(id ksuid.KSUID) (*Snapshot, error) {
	value, closer, err := s.db.Get(snapshotKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	defer closer.Close()

	f, err := decodeFrame(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &Snapshot{
		Info: info(id, f),
		Data: append([]byte(nil), f.Data...),
	}, nil
}

func info(id ksuid.KSUID, f *frame) Info {
	return Info{
		ID:      id,
		Path:    string(f.Path),
		Size:    len(f.Data),
		Created: time.Unix(0, int64(f.Timestamp)),
	}
}

// List returns every snapshot, oldest first.
func (s *Store) List() ([]Info, error) {
	upper := append(append([]byte{}, keyPrefix[:len(keyPrefix)-1]...), keyPrefix[len(keyPrefix)-1]+1)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer iter.Close()

	var out []Info
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %x", ErrCorrupt, iter.Key())
		}
		f, err := decodeFrame(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		out = append(out, info(id, f))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes a snapshot.
func (s *Store) Delete(id ksuid.KSUID) error {
	key := snapshotKey(id)
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	closer.Close()
	return s.db.Delete(key, pebble.Sync)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ParseID parses the text form of a snapshot ID.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid snapshot id %q: %w", s, err)
	}
	return id, nil
}
