package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"conduit/internal/entity"
)

// slotKey is the single local-storage key the engine owns.
const slotKey = "conduit"

// viewerRecord is the JSON shape of the storage slot.
type viewerRecord struct {
	Profile struct {
		Username string  `json:"username"`
		Bio      *string `json:"bio,omitempty"`
		Avatar   string  `json:"avatar"`
	} `json:"profile"`
	AuthToken string `json:"authToken"`
}

// BadgerStore implements Store on a BadgerDB directory.
type BadgerStore struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerStore opens (or creates) the store at the given path.
func NewBadgerStore(path string, logger logrus.FieldLogger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open session store")
		return nil, fmt.Errorf("open session store at %s: %w", path, err)
	}

	return &BadgerStore{
		db:  db,
		log: logger.WithField("component", "session_store"),
	}, nil
}

// Load reads the viewer slot. A missing slot returns nil, nil.
func (s *BadgerStore) Load() (*entity.Viewer, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(slotKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to read viewer slot")
		return nil, fmt.Errorf("load viewer: %w", err)
	}

	var rec viewerRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.WithError(err).Error("Failed to decode viewer slot")
		return nil, fmt.Errorf("decode viewer: %w", err)
	}

	var avatar *string
	if rec.Profile.Avatar != "" {
		avatar = &rec.Profile.Avatar
	}
	v := entity.Viewer{
		Profile: entity.Profile{
			Username: entity.Username(rec.Profile.Username),
			Bio:      rec.Profile.Bio,
			Avatar:   entity.NewAvatar(avatar),
		},
		AuthToken: rec.AuthToken,
	}
	return &v, nil
}

// Save replaces the viewer slot.
func (s *BadgerStore) Save(v entity.Viewer) error {
	var rec viewerRecord
	rec.Profile.Username = v.Profile.Username.String()
	rec.Profile.Bio = v.Profile.Bio
	if url, ok := v.Profile.Avatar.Custom(); ok {
		rec.Profile.Avatar = url
	}
	rec.AuthToken = v.AuthToken

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode viewer: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(slotKey), raw))
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to write viewer slot")
		return fmt.Errorf("save viewer: %w", err)
	}

	s.log.WithField("username", v.Username()).Info("Viewer stored")
	return nil
}

// Clear empties the viewer slot. Clearing twice is fine.
func (s *BadgerStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(slotKey))
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to clear viewer slot")
		return fmt.Errorf("clear viewer: %w", err)
	}
	s.log.Info("Viewer slot cleared")
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warningf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Infof(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }
