package binx

import (
	"testing"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/stretchr/testify/assert"
)

func TestPutParse_Sequence(t *testing.T) {
	var key address.Pubkey
	key[0], key[31] = 7, 9

	var data []byte
	PutUint8(3, &data)
	PutBool(true, &data)
	PutUint32(0xdeadbeef, &data)
	PutUint64(1<<40+5, &data)
	PutInt64(-2, &data)
	PutPubkey(key, &data)
	PutString("alice", &data)
	PutFixed([]byte{1, 2}, &data)

	pos := 0
	var (
		u8  uint8
		b   bool
		u32 uint32
		u64 uint64
		i64 int64
		pk  address.Pubkey
		s   string
		fx  []byte
	)
	u8, pos = ParseUint8(data, pos)
	b, pos = ParseBool(data, pos)
	u32, pos = ParseUint32(data, pos)
	u64, pos = ParseUint64(data, pos)
	i64, pos = ParseInt64(data, pos)
	pk, pos = ParsePubkey(data, pos)
	s, pos = ParseString(data, pos)
	fx, pos = ParseFixed(data, pos, 2)

	assert.True(t, Complete(data, pos))
	assert.Equal(t, uint8(3), u8)
	assert.True(t, b)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	assert.Equal(t, uint64(1<<40+5), u64)
	assert.Equal(t, int64(-2), i64)
	assert.Equal(t, key, pk)
	assert.Equal(t, "alice", s)
	assert.Equal(t, []byte{1, 2}, fx)
}

func TestParse_OverrunIsSticky(t *testing.T) {
	data := []byte{1, 2, 3}
	_, pos := ParseUint64(data, 0)
	assert.Equal(t, len(data)+1, pos)

	_, pos = ParseUint8(data, pos)
	assert.False(t, Complete(data, pos))
}

func TestParseBytes_LengthBeyondBuffer(t *testing.T) {
	var data []byte
	PutUint32(100, &data)
	data = append(data, 1, 2, 3)

	b, pos := ParseBytes(data, 0)
	assert.Nil(t, b)
	assert.False(t, Complete(data, pos))
}

func TestParseBool_RejectsOtherValues(t *testing.T) {
	_, pos := ParseBool([]byte{2}, 0)
	assert.False(t, Complete([]byte{2}, pos))
}
