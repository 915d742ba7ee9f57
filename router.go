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
	"bufio"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AdvertiseInterval is the periodic self-LSP broadcast period.
const AdvertiseInterval = 5 * time.Second

// pollInterval is the sleep after every loop iteration (advertise check,
// neighbor drain, stdin poll) that does not end the run.
const pollInterval = 2 * time.Millisecond

// commandReader delivers stdin lines to the event loop without blocking
// it. A single goroutine blocks on the stdin file descriptor and forwards
// complete lines over a channel; poll only ever does a non-blocking
// channel receive.
type commandReader struct {
	lines chan string
}

func newCommandReader(r *os.File) *commandReader {
	cr := &commandReader{lines: make(chan string, 8)}
	go func() {
		defer close(cr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cr.lines <- scanner.Text()
		}
	}()
	return cr
}

// poll returns the next buffered line, if any, without blocking.
func (cr *commandReader) poll() (string, bool) {
	select {
	case line, ok := <-cr.lines:
		return line, ok
	default:
		return "", false
	}
}

// Router owns the run's mutable state: routing table, seen cache, peer
// map, and sequence counter. All of it is confined to the goroutine
// running Run.
type Router struct {
	self NodeId
	log  *logrus.Logger

	table *Table
	seen  *SeenCache
	peers *PeerMap
	links []Link

	seq           int32
	lastAdvertise time.Time
	selfTemplate  LSPPacket
	done          bool
}

// NewRouter builds a router ready to Run. peers must already contain one
// connected Peer per link (see Connect); the table is seeded with the
// direct links.
func NewRouter(self NodeId, log *logrus.Logger, links []Link, peers *PeerMap) *Router {
	return &Router{
		self:         self,
		log:          log,
		table:        NewTable(self, links),
		seen:         NewSeenCache(),
		peers:        peers,
		links:        links,
		selfTemplate: selfLSP(self, links, 0),
	}
}

// Run executes the event loop until a local `exit` command or a received
// kill packet sets done. Each iteration, in order: advertise-if-due,
// drain every neighbor once, poll stdin. The kill packet is always
// relayed (if its TTL survives) before the loop returns.
func (r *Router) Run() error {
	r.lastAdvertise = time.Now()
	logTable(r.log, r.self, r.table)

	cmds := newCommandReader(os.Stdin)
	for !r.done {
		r.advertiseIfDue()
		r.drainPeers()
		r.pollCommand(cmds)
		if !r.done {
			time.Sleep(pollInterval)
		}
	}
	return nil
}

func (r *Router) advertiseIfDue() {
	now := time.Now()
	if now.Before(r.lastAdvertise.Add(AdvertiseInterval)) {
		return
	}
	r.lastAdvertise = now
	r.seq++
	r.selfTemplate.Header.SeqNum = r.seq
	r.log.WithFields(logrus.Fields{"self": string(r.self), "seq": r.seq}).Info("sending periodic advertisement")
	r.sendToAll(&r.selfTemplate)
}

// drainPeers issues one non-blocking read attempt per neighbor, in
// insertion order.
func (r *Router) drainPeers() {
	r.peers.Each(func(p *Peer) {
		pkt, err := p.ReadFrame()
		if err != nil {
			var transient *TransientIOError
			if errors.As(err, &transient) {
				return // EAGAIN/EWOULDBLOCK, nothing to read
			}
			var proto *ProtocolError
			if errors.As(err, &proto) {
				r.log.WithError(err).WithField("peer", p.ID).Debug("dropping malformed frame")
				return
			}
			r.log.WithError(&PeerIOError{Neighbor: p.ID, cause: err}).Warn("peer I/O error")
			return
		}
		if pkt == nil {
			return // partial frame still accumulating
		}
		r.handlePacket(pkt)
	})
}

// handlePacket applies the freshness gate, then either the kill path or
// the regular update-and-forward path.
func (r *Router) handlePacket(pkt *LSPPacket) {
	src := pkt.Header.SrcID
	if !r.seen.Fresh(src, pkt.Header.SeqNum) {
		return // stale: no mutation, no forwarding
	}

	logLSP(r.log, r.self, pkt)
	r.seen.Record(src, pkt.Header.SeqNum)

	if pkt.Header.Flags&KillFlag != 0 {
		r.handleKill(src, pkt)
		return
	}

	r.table.Update(src, pkt.Data[:pkt.Header.Entries])
	logTable(r.log, r.self, r.table)

	// The origin's src_id is preserved on the relayed copy so that
	// downstream duplicate suppression keys on the true source.
	pkt.Header.TTL--
	if pkt.Header.TTL > 0 {
		r.log.Info("forwarding...")
		r.sendToAllExcept(pkt, src)
	}
}

// handleKill rewrites src_id to this node (so the upstream link never
// receives its own id back), decrements TTL, forwards to every neighbor
// except the one the kill arrived from if TTL survives, and always sets
// done: shutdown completes locally even when the packet cannot travel
// further.
func (r *Router) handleKill(from NodeId, pkt *LSPPacket) {
	r.log.WithField("from", string(from)).Info("kill packet received")

	pkt.Header.SrcID = r.self
	pkt.Header.TTL--
	if pkt.Header.TTL > 0 {
		r.sendToAllExcept(pkt, from)
	}
	r.done = true
}

// pollCommand consumes at most one buffered stdin line. Only a line
// beginning with "exit" has any effect; anything else is ignored.
func (r *Router) pollCommand(cmds *commandReader) {
	line, ok := cmds.poll()
	if !ok {
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "exit") {
		r.log.WithError(&CommandError{Command: line}).Debug("ignoring unrecognized command")
		return
	}

	r.log.Info("exit command received, broadcasting kill")
	kill := killPacket(r.self)
	r.sendToAll(&kill)
	r.done = true
}

// sendToAll broadcasts pkt to every neighbor.
func (r *Router) sendToAll(pkt *LSPPacket) {
	r.peers.Each(func(p *Peer) {
		r.sendOne(p, pkt)
	})
}

// sendToAllExcept broadcasts pkt to every neighbor other than except.
func (r *Router) sendToAllExcept(pkt *LSPPacket, except NodeId) {
	r.peers.Each(func(p *Peer) {
		if p.ID == except {
			return
		}
		r.sendOne(p, pkt)
	})
}

func (r *Router) sendOne(p *Peer, pkt *LSPPacket) {
	if err := p.Send(pkt); err != nil {
		r.log.WithError(&PeerIOError{Neighbor: p.ID, cause: err}).Warn("peer I/O error sending")
	}
}
