// Package binx holds the little-endian Put/Parse helpers used for account
// data, transaction messages and snapshots.
//
// Put functions append to *data. Parse functions take the buffer and a read
// position and return the value and the next position. A read past the end
// returns a zero value and len(data)+1, and every later Parse on that
// position does the same, so a decoder only checks once at the end with
// Complete.
package binx

import (
	"encoding/binary"

	"github.com/dmitrijs2005/linkify/internal/address"
)

func overrun(data []byte) int {
	return len(data) + 1
}

func PutUint8(v uint8, data *[]byte) {
	*data = append(*data, v)
}

func PutBool(v bool, data *[]byte) {
	if v {
		*data = append(*data, 1)
		return
	}
	*data = append(*data, 0)
}

func PutUint32(v uint32, data *[]byte) {
	*data = binary.LittleEndian.AppendUint32(*data, v)
}

func PutUint64(v uint64, data *[]byte) {
	*data = binary.LittleEndian.AppendUint64(*data, v)
}

func PutInt64(v int64, data *[]byte) {
	PutUint64(uint64(v), data)
}

func PutPubkey(p address.Pubkey, data *[]byte) {
	*data = append(*data, p[:]...)
}

// PutBytes writes b with a u32 length prefix.
func PutBytes(b []byte, data *[]byte) {
	PutUint32(uint32(len(b)), data)
	*data = append(*data, b...)
}

func PutString(s string, data *[]byte) {
	PutBytes([]byte(s), data)
}

// PutFixed writes b without a length prefix.
func PutFixed(b []byte, data *[]byte) {
	*data = append(*data, b...)
}

func ParseUint8(data []byte, position int) (uint8, int) {
	if position+1 > len(data) {
		return 0, overrun(data)
	}
	return data[position], position + 1
}

// ParseBool accepts only 0 and 1.
func ParseBool(data []byte, position int) (bool, int) {
	v, next := ParseUint8(data, position)
	if next > len(data) || v > 1 {
		return false, overrun(data)
	}
	return v == 1, next
}

func ParseUint32(data []byte, position int) (uint32, int) {
	if position+4 > len(data) {
		return 0, overrun(data)
	}
	return binary.LittleEndian.Uint32(data[position:]), position + 4
}

func ParseUint64(data []byte, position int) (uint64, int) {
	if position+8 > len(data) {
		return 0, overrun(data)
	}
	return binary.LittleEndian.Uint64(data[position:]), position + 8
}

func ParseInt64(data []byte, position int) (int64, int) {
	v, next := ParseUint64(data, position)
	return int64(v), next
}

func ParsePubkey(data []byte, position int) (address.Pubkey, int) {
	var p address.Pubkey
	if position+address.Size > len(data) {
		return p, overrun(data)
	}
	copy(p[:], data[position:position+address.Size])
	return p, position + address.Size
}

// ParseBytes reads a u32 length-prefixed slice. The result is a copy.
func ParseBytes(data []byte, position int) ([]byte, int) {
	n, next := ParseUint32(data, position)
	if next > len(data) || next+int(n) > len(data) {
		return nil, overrun(data)
	}
	out := make([]byte, n)
	copy(out, data[next:next+int(n)])
	return out, next + int(n)
}

func ParseString(data []byte, position int) (string, int) {
	b, next := ParseBytes(data, position)
	return string(b), next
}

// ParseFixed reads exactly n bytes. The result is a copy.
func ParseFixed(data []byte, position, n int) ([]byte, int) {
	if position+n > len(data) {
		return nil, overrun(data)
	}
	out := make([]byte, n)
	copy(out, data[position:position+n])
	return out, position + n
}

// Complete reports whether decoding consumed data exactly.
func Complete(data []byte, position int) bool {
	return position == len(data)
}
