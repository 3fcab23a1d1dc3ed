package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// FormatVersion bumps whenever the data file layout changes, so an old
// snapshot never looks up to date.
const FormatVersion = "posts/v1"

type Fingerprint struct {
	PostsHash string
	SiteHash  string
	Sum       string
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (f *Fingerprint) ComputeSum() {
	h := sha256.New()
	h.Write([]byte(FormatVersion))
	h.Write([]byte(f.PostsHash))
	h.Write([]byte(f.SiteHash))
	f.Sum = hex.EncodeToString(h.Sum(nil))
}
