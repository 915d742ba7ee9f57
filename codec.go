/*
 * lsrouted, a link-state routing daemon. Copyright (C) 2013-present Ben Cavins
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package router

import (
	"encoding/binary"
)

// MaxEntries is the fixed entry-array width carried on every wire frame.
// The array is always full-width on the wire; only the first
// header.Entries slots carry meaning.
const MaxEntries = 64

// KillFlag is bit 0 of LSPHeader.Flags: the packet is a kill/shutdown
// control LSP rather than a route advertisement.
const KillFlag int32 = 1

// Wire layout, little-endian:
//
//	seq_num  int32
//	src_id   [24]byte, null-padded
//	flags    int32
//	length   int32
//	entries  int32
//	ttl      int32
//	data     [64]{ id [24]byte, cost int32 }
const (
	headerSize = 4 + MaxIDLen + 4 + 4 + 4 + 4
	entrySize  = MaxIDLen + 4
	frameSize  = headerSize + MaxEntries*entrySize
)

// FrameSize is the fixed on-the-wire size of one LSPPacket. Every send
// transmits exactly this many bytes; Decode rejects a buffer of any other
// length as a protocol error.
const FrameSize = frameSize

// LSPHeader is the fixed packet header.
type LSPHeader struct {
	SeqNum  int32
	SrcID   NodeId
	Flags   int32
	Length  int32
	Entries int32
	TTL     int32
}

// LSPEntry is one (id, cost) pair in a packet's entry array.
type LSPEntry struct {
	ID   NodeId
	Cost int32
}

// LSPPacket is a full fixed-size frame: a header plus a 64-wide entry
// array, of which only Header.Entries slots are meaningful.
type LSPPacket struct {
	Header LSPHeader
	Data   [MaxEntries]LSPEntry
}

func putNodeID(buf []byte, id NodeId) {
	n := copy(buf, id)
	for i := n; i < MaxIDLen; i++ {
		buf[i] = 0
	}
}

func getNodeID(buf []byte) NodeId {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return NodeId(buf[:n])
}

// Encode marshals the packet into its fixed FrameSize-byte wire form.
func (p *LSPPacket) Encode() []byte {
	buf := make([]byte, frameSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Header.SeqNum))
	putNodeID(buf[4:4+MaxIDLen], p.Header.SrcID)
	off := 4 + MaxIDLen
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(p.Header.Flags))
	binary.LittleEndian.PutUint32(buf[off+4:off+8], uint32(p.Header.Length))
	binary.LittleEndian.PutUint32(buf[off+8:off+12], uint32(p.Header.Entries))
	binary.LittleEndian.PutUint32(buf[off+12:off+16], uint32(p.Header.TTL))

	base := headerSize
	for i := 0; i < MaxEntries; i++ {
		eoff := base + i*entrySize
		putNodeID(buf[eoff:eoff+MaxIDLen], p.Data[i].ID)
		binary.LittleEndian.PutUint32(buf[eoff+MaxIDLen:eoff+MaxIDLen+4], uint32(p.Data[i].Cost))
	}

	return buf
}

// Decode parses a fixed FrameSize-byte wire frame. It returns a
// *ProtocolError if buf is not exactly one frame or Entries is out of
// range.
func Decode(buf []byte) (*LSPPacket, error) {
	if len(buf) != frameSize {
		return nil, newProtocolError("frame is %d bytes, want %d", len(buf), frameSize)
	}

	var p LSPPacket
	p.Header.SeqNum = int32(binary.LittleEndian.Uint32(buf[0:4]))
	p.Header.SrcID = getNodeID(buf[4 : 4+MaxIDLen])
	off := 4 + MaxIDLen
	p.Header.Flags = int32(binary.LittleEndian.Uint32(buf[off : off+4]))
	p.Header.Length = int32(binary.LittleEndian.Uint32(buf[off+4 : off+8]))
	p.Header.Entries = int32(binary.LittleEndian.Uint32(buf[off+8 : off+12]))
	p.Header.TTL = int32(binary.LittleEndian.Uint32(buf[off+12 : off+16]))

	if p.Header.Entries < 0 || p.Header.Entries > MaxEntries {
		return nil, newProtocolError("entries %d out of range [0, %d]", p.Header.Entries, MaxEntries)
	}

	base := headerSize
	for i := 0; i < MaxEntries; i++ {
		eoff := base + i*entrySize
		p.Data[i].ID = getNodeID(buf[eoff : eoff+MaxIDLen])
		p.Data[i].Cost = int32(binary.LittleEndian.Uint32(buf[eoff+MaxIDLen : eoff+MaxIDLen+4]))
	}

	return &p, nil
}

func buildHeader(seq int32, src NodeId, flags int32, entries int32, ttl int32) LSPHeader {
	return LSPHeader{
		SeqNum:  seq,
		SrcID:   src,
		Flags:   flags,
		Length:  int32(headerSize + int(entries)*entrySize),
		Entries: entries,
		TTL:     ttl,
	}
}

// selfLSP builds the self-advertisement packet from the direct-neighbor
// list, one entry per link. Only Header.SeqNum changes between ticks.
func selfLSP(self NodeId, links []Link, seq int32) LSPPacket {
	var p LSPPacket
	n := len(links)
	if n > MaxEntries {
		n = MaxEntries
	}
	for i := 0; i < n; i++ {
		p.Data[i] = LSPEntry{ID: links[i].DestID, Cost: int32(links[i].Cost)}
	}
	p.Header = buildHeader(seq, self, 0, int32(n), TTL)
	return p
}

// killPacket builds the shutdown control LSP: KILL flag set, maximum
// sequence number so it is always fresh, no entries.
func killPacket(self NodeId) LSPPacket {
	var p LSPPacket
	p.Header = buildHeader(maxSeqNum, self, int32(KillFlag), 0, TTL)
	return p
}

const maxSeqNum = int32(1<<31 - 1)

// TTL is the initial hop budget for every LSP, regular or kill.
const TTL = 6
