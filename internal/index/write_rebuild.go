package index

import (
	"encoding/json"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"ylwblog/internal/domain/content"
)

type RebuildOptions struct {
	Fingerprint string
	BuiltAt     time.Time
}

// Rebuild replaces the whole snapshot in one transaction. posts must already
// be in display order.
func (s *Store) Rebuild(posts []content.Post, opt RebuildOptions) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bMeta, bIdxTime, bInfo} {
			if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}

		metaB, err := tx.CreateBucket(bMeta)
		if err != nil {
			return err
		}
		idxB, err := tx.CreateBucket(bIdxTime)
		if err != nil {
			return err
		}
		infoB, err := tx.CreateBucket(bInfo)
		if err != nil {
			return err
		}

		for i, p := range posts {
			link := strings.TrimSpace(p.Link)
			if link == "" {
				continue
			}
			pb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(link), pb); err != nil {
				return err
			}
			key := makeTimeSeqLinkKey(p.Date.Timestamp, i, link)
			if err := idxB.Put(key, []byte(link)); err != nil {
				return err
			}
		}

		if err := infoB.Put(kFingerprint, []byte(opt.Fingerprint)); err != nil {
			return err
		}
		builtAt := opt.BuiltAt
		if builtAt.IsZero() {
			builtAt = time.Now()
		}
		return infoB.Put(kBuiltAt, []byte(builtAt.UTC().Format(time.RFC3339Nano)))
	})
}
