package journal

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/rookgm/gopherstore/internal/models"
)

const bucketName = "captures"

// Journal is local file of captured payments waiting to be written to order store
type Journal struct {
	db *bolt.DB
}

// New opens or creates journal file at path
func New(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Close releases journal file lock
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores capture of order, recording the same order again keeps attempt count
func (j *Journal) Record(entry models.JournalEntry) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		if existing := b.Get([]byte(entry.OrderID)); existing != nil {
			prev := models.JournalEntry{}
			if err := json.Unmarshal(existing, &prev); err == nil && prev.Attempts > entry.Attempts {
				entry.Attempts = prev.Attempts
			}
		}

		return put(b, entry)
	})
}

// MarkAttempt increments attempt count of entry and keeps last error
func (j *Journal) MarkAttempt(orderID string, cause error) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		v := b.Get([]byte(orderID))
		if v == nil {
			return models.ErrDataNotFound
		}

		entry := models.JournalEntry{}
		if err := json.Unmarshal(v, &entry); err != nil {
			return err
		}

		entry.Attempts++
		if cause != nil {
			entry.LastError = cause.Error()
		}

		return put(b, entry)
	})
}

// Pending returns all journaled captures ordered by order id
func (j *Journal) Pending() ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}

	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			entry := models.JournalEntry{}
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Remove deletes entry, removing absent entry is not an error
func (j *Journal) Remove(orderID string) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(orderID))
	})
}

func put(b *bolt.Bucket, entry models.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return b.Put([]byte(entry.OrderID), data)
}
