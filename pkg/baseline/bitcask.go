package baseline

import (
	"context"
	"errors"
	"fmt"

	"github.com/prologic/bitcask"
	log "github.com/sirupsen/logrus"
)

const (
	bitcaskMaxKeySize   = 256
	bitcaskMaxValueSize = 1 << 24
)

// BitcaskBackend keeps baselines in a bitcask database directory.
type BitcaskBackend struct {
	db *bitcask.Bitcask
}

func OpenBitcask(path string) (*BitcaskBackend, error) {
	db, err := bitcask.Open(
		path,
		bitcask.WithMaxKeySize(bitcaskMaxKeySize),
		bitcask.WithMaxValueSize(bitcaskMaxValueSize),
	)
	if err != nil {
		return nil, fmt.Errorf("open bitcask %s: %w", path, err)
	}

	return &BitcaskBackend{db: db}, nil
}

func (b *BitcaskBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := b.db.Get([]byte(key))
	if errors.Is(err, bitcask.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

func (b *BitcaskBackend) Put(_ context.Context, key string, value []byte) error {
	if err := b.db.Put([]byte(key), value); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	if err := b.db.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", key, err)
	}
	return nil
}

func (b *BitcaskBackend) Delete(_ context.Context, key string) error {
	if !b.db.Has([]byte(key)) {
		return nil
	}
	if err := b.db.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return b.db.Sync()
}

func (b *BitcaskBackend) Close() error {
	log.Debug("syncing bitcask store ...")
	if err := b.db.Sync(); err != nil {
		log.WithError(err).Error("error syncing bitcask store")
		return err
	}

	log.Debug("closing bitcask store ...")
	if err := b.db.Close(); err != nil {
		log.WithError(err).Error("error closing bitcask store")
		return err
	}

	return nil
}
