package router

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	pkt := selfLSP("A", []Link{
		{DestID: "B", Cost: 1, OutPort: 9601, DestPort: 9604},
		{DestID: "C", Cost: 4, OutPort: 9602, DestPort: 9606},
	}, 7)

	buf := pkt.Encode()
	require.Len(t, buf, FrameSize)

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, pkt, *decoded)
}

func TestEncode_AlwaysFullWidth(t *testing.T) {
	pkt := selfLSP("A", []Link{{DestID: "B", Cost: 1, OutPort: 9601, DestPort: 9604}}, 1)
	buf := pkt.Encode()
	assert.Len(t, buf, headerSize+MaxEntries*entrySize)
}

func TestDecode_ShortFrameIsProtocolError(t *testing.T) {
	_, err := Decode(make([]byte, FrameSize-1))
	require.Error(t, err)
	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestDecode_EntriesOutOfRangeIsProtocolError(t *testing.T) {
	pkt := selfLSP("A", nil, 1)
	buf := pkt.Encode()
	// Corrupt the entries field (offset 4+MaxIDLen+4+4) to exceed MaxEntries.
	off := 4 + MaxIDLen + 4 + 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(MaxEntries+1))

	_, err := Decode(buf)
	require.Error(t, err)
	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestKillPacket_Shape(t *testing.T) {
	pkt := killPacket("A")
	assert.Equal(t, int32(KillFlag), pkt.Header.Flags)
	assert.Equal(t, int32(TTL), pkt.Header.TTL)
	assert.Equal(t, maxSeqNum, pkt.Header.SeqNum)
	assert.Equal(t, int32(0), pkt.Header.Entries)
}

func TestNodeID_NullPaddedRoundTrip(t *testing.T) {
	buf := make([]byte, MaxIDLen)
	putNodeID(buf, "A")
	for i := 1; i < MaxIDLen; i++ {
		assert.Equal(t, byte(0), buf[i])
	}
	assert.Equal(t, NodeId("A"), getNodeID(buf))
}

func TestNodeID_TruncatesAtMaxLen(t *testing.T) {
	long := "this-id-is-longer-than-24-bytes-wide"
	buf := make([]byte, MaxIDLen)
	putNodeID(buf, NodeId(long))
	assert.Equal(t, NodeId(long[:MaxIDLen]), getNodeID(buf))
}
