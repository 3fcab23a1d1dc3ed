package index

var (
	bMeta    = []byte("meta")     // link -> post json
	bIdxTime = []byte("idx_time") // invTime + seq + 0x00 + link -> link
	bInfo    = []byte("info")     // snapshot facts

	kFingerprint = []byte("fingerprint")
	kBuiltAt     = []byte("built_at")
)
