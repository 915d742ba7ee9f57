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
	"net"
	"syscall"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// connectTimeout bounds the initial connect attempt in the
// connect-or-listen bootstrap. A short timeout lets the fallback to
// listening happen promptly when the peer isn't up yet.
const connectTimeout = 500 * time.Millisecond

// Peer is one neighbor's bidirectional byte-stream endpoint, plus the
// bookkeeping needed to turn non-blocking reads into whole LSP frames.
type Peer struct {
	ID   NodeId
	Link Link

	conn net.Conn
	raw  syscall.RawConn
	buf  []byte // partial-frame accumulator
}

func newPeer(l Link, conn net.Conn) (*Peer, error) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return nil, errors.New("connection is not a TCP stream")
	}
	raw, err := tcp.SyscallConn()
	if err != nil {
		return nil, errors.Wrap(err, "obtaining raw conn")
	}

	var setErr error
	err = raw.Control(func(fd uintptr) {
		setErr = unix.SetNonblock(int(fd), true)
	})
	if err != nil {
		return nil, errors.Wrap(err, "controlling raw conn")
	}
	if setErr != nil {
		return nil, errors.Wrap(setErr, "setting non-blocking mode")
	}

	return &Peer{ID: l.DestID, Link: l, conn: conn, raw: raw, buf: make([]byte, 0, frameSize)}, nil
}

// tryRead performs exactly one non-blocking raw read into buf. It returns
// a *TransientIOError on EAGAIN/EWOULDBLOCK instead of blocking.
func (p *Peer) tryRead(buf []byte) (int, error) {
	var n int
	var readErr error

	err := p.raw.Read(func(fd uintptr) bool {
		n, readErr = unix.Read(int(fd), buf)
		return true
	})
	if err != nil {
		return 0, err
	}
	if readErr == unix.EAGAIN || readErr == unix.EWOULDBLOCK {
		return 0, &TransientIOError{cause: readErr}
	}
	if readErr != nil {
		return 0, readErr
	}
	return n, nil
}

// ReadFrame attempts to top up this peer's partial-frame buffer with one
// non-blocking read and, once a full FrameSize has accumulated, decodes
// and returns it. A (nil, nil) result means no complete frame is ready
// yet, which is not an error.
func (p *Peer) ReadFrame() (*LSPPacket, error) {
	need := frameSize - len(p.buf)
	tmp := make([]byte, need)

	n, err := p.tryRead(tmp)
	if err != nil {
		if _, transient := err.(*TransientIOError); transient {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	p.buf = append(p.buf, tmp[:n]...)
	if len(p.buf) < frameSize {
		return nil, nil
	}

	pkt, err := Decode(p.buf)
	p.buf = p.buf[:0]
	return pkt, err
}

// Send writes the packet's full fixed-size frame. Best-effort: on
// loopback, with these payload sizes, the write does not block.
func (p *Peer) Send(pkt *LSPPacket) error {
	_, err := p.conn.Write(pkt.Encode())
	return err
}

// Close releases the peer's connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}

// PeerMap is an ordered NodeId -> *Peer map: neighbors are iterated in
// insertion (i.e. init-file) order. Backed by gods/linkedhashmap.
type PeerMap struct {
	m *linkedhashmap.Map
}

// NewPeerMap returns an empty, order-preserving peer map.
func NewPeerMap() *PeerMap {
	return &PeerMap{m: linkedhashmap.New()}
}

func (pm *PeerMap) put(id NodeId, p *Peer) {
	pm.m.Put(id, p)
}

// Get returns the peer for id, if present.
func (pm *PeerMap) Get(id NodeId) (*Peer, bool) {
	v, found := pm.m.Get(id)
	if !found {
		return nil, false
	}
	return v.(*Peer), true
}

// Each invokes fn for every peer in insertion order.
func (pm *PeerMap) Each(fn func(*Peer)) {
	it := pm.m.Iterator()
	for it.Next() {
		fn(it.Value().(*Peer))
	}
}

// Len returns the number of peers.
func (pm *PeerMap) Len() int {
	return pm.m.Size()
}

// Connect establishes one stream per Link. For each link it attempts a
// connect first; if the peer isn't listening yet, it converts the same
// local endpoint into a listener and accepts instead. Both sides' init
// files must agree on the port pair for this to resolve without central
// coordination.
func Connect(links []Link) (*PeerMap, error) {
	pm := NewPeerMap()

	for _, l := range links {
		conn, err := connectOrListen(l)
		if err != nil {
			return nil, &SocketBootstrapError{Neighbor: l.DestID, cause: err}
		}

		peer, err := newPeer(l, conn)
		if err != nil {
			return nil, &SocketBootstrapError{Neighbor: l.DestID, cause: err}
		}

		pm.put(l.DestID, peer)
	}

	return pm, nil
}

func connectOrListen(l Link) (net.Conn, error) {
	localAddr := &net.TCPAddr{IP: net.IPv4zero, Port: int(l.OutPort)}
	remoteAddr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: int(l.DestPort)}

	dialer := net.Dialer{LocalAddr: localAddr, Timeout: connectTimeout}
	conn, err := dialer.Dial("tcp", remoteAddr.String())
	if err == nil {
		return conn, nil
	}

	// Connect failed (peer not listening yet): become the listener side.
	listener, lerr := net.ListenTCP("tcp", localAddr)
	if lerr != nil {
		return nil, errors.Wrapf(lerr, "listen on port %d after connect to %s failed (%v)", l.OutPort, remoteAddr, err)
	}
	defer listener.Close()

	accepted, aerr := listener.Accept()
	if aerr != nil {
		return nil, errors.Wrapf(aerr, "accept on port %d", l.OutPort)
	}

	return accepted, nil
}
