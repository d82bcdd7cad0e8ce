package misc

import (
	"errors"

	"github.com/boltdb/bolt"
)

var ErrNoBucket = errors.New("bucket does not exist")

func OpenDB(path string, name string) (*bolt.DB, error) {
	return bolt.Open(path+name+".db", 0600, nil)
}

// InitBuckets creates every named bucket that doesn't exist yet.
func InitBuckets(db *bolt.DB, names ...string) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

func GetBucket(tx *bolt.Tx, bucketName string) *bolt.Bucket {
	return tx.Bucket([]byte(bucketName))
}

func GetBucketBytes(tx *bolt.Tx, bucketName string, id string) ([]byte, error) {
	b := GetBucket(tx, bucketName)
	if b == nil {
		return nil, ErrNoBucket
	}
	v := b.Get([]byte(id))
	if v == nil {
		return nil, nil
	}
	// bolt values are only valid for the life of the tx
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func PutBucketBytes(tx *bolt.Tx, bucketName string, id string, value []byte) error {
	b := GetBucket(tx, bucketName)
	if b == nil {
		return ErrNoBucket
	}
	return b.Put([]byte(id), value)
}

func DelBucketBytes(tx *bolt.Tx, bucketName string, id string) error {
	b := GetBucket(tx, bucketName)
	if b == nil {
		return ErrNoBucket
	}
	return b.Delete([]byte(id))
}
