package index

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"ylwblog/internal/domain/content"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Page int
	Size int
	Year int // 0 = every year
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 1000 {
		size = 1000
	}
	return page, size
}

func (s *Store) Get(link string) (content.Post, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return content.Post{}, ErrNotFound
	}
	var p content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(link))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

// List walks the time index newest first.
func (s *Store) List(opt ListOptions) ([]content.Post, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxTime)
		metaB := tx.Bucket(bMeta)
		if idx == nil || metaB == nil {
			return nil
		}

		skip := (opt.Page - 1) * opt.Size
		cur := idx.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			link := linkFromTimeSeqLinkKey(k)
			if link == "" {
				continue
			}
			v := metaB.Get([]byte(link))
			if v == nil {
				continue
			}
			var p content.Post
			if err := json.Unmarshal(v, &p); err != nil {
				continue
			}
			if opt.Year != 0 && p.Date.Year != opt.Year {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, p)
			if len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bIdxTime)
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

// Fingerprint returns the fingerprint recorded by the last Rebuild, or "".
func (s *Store) Fingerprint() (string, error) {
	var fp string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bInfo)
		if b == nil {
			return nil
		}
		fp = string(b.Get(kFingerprint))
		return nil
	})
	return fp, err
}

func (s *Store) BuiltAt() (time.Time, error) {
	var at time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bInfo)
		if b == nil {
			return nil
		}
		v := b.Get(kBuiltAt)
		if v == nil {
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return err
		}
		at = t
		return nil
	})
	return at, err
}

// Years groups the snapshot by the displayed publication year, newest first.
func (s *Store) Years() ([]YearSummary, error) {
	counts := make(map[int]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var p content.Post
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			counts[p.Date.Year]++
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]YearSummary, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearSummary{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}
