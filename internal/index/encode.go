package index

import "encoding/binary"

const signBit = uint64(1) << 63

// key = invTime(8) + seq(4) + 0x00 + link
//
// The sign bit is flipped before inverting so pre-1970 dates still sort
// after newer ones.
//
// seq is the position in the already sorted list, so posts sharing a
// timestamp come back in the order the loader produced them.
func makeTimeSeqLinkKey(unixMilli int64, seq int, link string) []byte {
	buf := make([]byte, 12, 12+1+len(link))
	binary.BigEndian.PutUint64(buf[0:8], ^(uint64(unixMilli) ^ signBit))
	binary.BigEndian.PutUint32(buf[8:12], uint32(seq))
	buf = append(buf, 0x00)
	buf = append(buf, link...)
	return buf
}

func linkFromTimeSeqLinkKey(k []byte) string {
	if len(k) < 12+2 {
		return ""
	}
	if k[12] != 0x00 {
		return ""
	}
	return string(k[13:])
}
