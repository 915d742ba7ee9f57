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
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the structured logger the daemon writes to: the
// initial table, every received LSP, kill notifications, forwarding
// markers, and the table after every update.
func NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		DisableSorting:   false,
		QuoteEmptyFields: true,
	})
	log.SetLevel(logrus.DebugLevel)
	return log
}

// logTable emits the full routing table.
func logTable(log *logrus.Logger, self NodeId, t *Table) {
	entries := t.Entries()
	fields := logrus.Fields{"self": string(self), "routes": len(entries)}
	for _, e := range entries {
		fields[string(e.DestID)] = logrus.Fields{"cost": e.Cost, "out_port": e.OutPort, "dest_port": e.DestPort}
	}
	log.WithFields(fields).Info("routing table")
}

// logLSP emits a received LSP's source and (id, cost) pairs.
func logLSP(log *logrus.Logger, self NodeId, pkt *LSPPacket) {
	fields := logrus.Fields{"self": string(self), "src": string(pkt.Header.SrcID), "seq": pkt.Header.SeqNum, "ttl": pkt.Header.TTL}
	for i := int32(0); i < pkt.Header.Entries; i++ {
		fields[string(pkt.Data[i].ID)] = pkt.Data[i].Cost
	}
	log.WithFields(fields).Info("received LSP")
}
