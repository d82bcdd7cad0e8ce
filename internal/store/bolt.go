package store

import (
	"github.com/boltdb/bolt"
	"github.com/swayops/portal/misc"
)

type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) path+name+".db" with the given buckets.
func OpenBolt(path, name string, buckets ...string) (*Bolt, error) {
	db, err := misc.OpenDB(path, name)
	if err != nil {
		return nil, err
	}
	if err := misc.InitBuckets(db, buckets...); err != nil {
		db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(bucket, key string) (v []byte, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		v, err = misc.GetBucketBytes(tx, bucket, key)
		return err
	})
	if err == nil && v == nil {
		err = ErrNotFound
	}
	return
}

func (b *Bolt) Put(bucket, key string, val []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return misc.PutBucketBytes(tx, bucket, key, val)
	})
}

func (b *Bolt) Delete(bucket, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return misc.DelBucketBytes(tx, bucket, key)
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

// CopyTo writes a consistent copy of the database to dst.
func (b *Bolt) CopyTo(dst string) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(dst, 0600)
	})
}
