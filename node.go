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

// Package router implements the core of a link-state routing daemon: LSP
// flooding over per-neighbor TCP connections, incremental shortest-path
// table updates, duplicate suppression, and a TTL-bounded kill protocol.
package router

// MaxIDLen bounds a NodeId the way the wire header's fixed-width src_id
// field does.
const MaxIDLen = 24

// NodeId identifies a router. It is compared bytewise and never exceeds
// MaxIDLen bytes on the wire.
type NodeId string

// Link is a direct neighbor record read from the init file. Immutable
// after load.
type Link struct {
	DestID   NodeId
	Cost     int
	OutPort  uint16
	DestPort uint16
}

// RouteEntry is a routing-table row. OutPort/DestPort always identify the
// direct-neighbor link used as the first hop toward DestID.
type RouteEntry struct {
	DestID   NodeId
	Cost     int
	OutPort  uint16
	DestPort uint16
}

func (l Link) routeEntry() RouteEntry {
	return RouteEntry{DestID: l.DestID, Cost: l.Cost, OutPort: l.OutPort, DestPort: l.DestPort}
}
