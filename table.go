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

// Table holds the current best next-hop per destination. Keys are
// destination NodeIds; this node's own id is never a key.
type Table struct {
	self    NodeId
	entries map[NodeId]RouteEntry
}

// NewTable seeds a table with one direct-link entry per neighbor.
func NewTable(self NodeId, links []Link) *Table {
	t := &Table{self: self, entries: make(map[NodeId]RouteEntry, len(links))}
	for _, l := range links {
		t.entries[l.DestID] = l.routeEntry()
	}
	return t
}

// Get returns the current entry for a destination, if any.
func (t *Table) Get(dest NodeId) (RouteEntry, bool) {
	e, ok := t.entries[dest]
	return e, ok
}

// Entries returns a snapshot of all current routes.
func (t *Table) Entries() []RouteEntry {
	out := make([]RouteEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// less orders candidate routes: lower cost wins; then lower out_port; then
// lexicographically smaller NodeId.
func less(c RouteEntry, x RouteEntry) bool {
	if c.Cost != x.Cost {
		return c.Cost < x.Cost
	}
	if c.OutPort != x.OutPort {
		return c.OutPort < x.OutPort
	}
	return c.DestID < x.DestID
}

// Update folds an LSP from src into the table. src must be a direct
// neighbor; its own table entry supplies the first hop for every
// candidate route, which is installed or replaces the current best per
// less.
//
// Returns true if any entry's recorded cost to its destination strictly
// decreased or a new destination was installed.
func (t *Table) Update(src NodeId, entries []LSPEntry) bool {
	nhop, ok := t.entries[src]
	if !ok {
		// No first-hop link to install routes through. Routes via an
		// indirect source arrive later, relayed by a direct neighbor.
		return false
	}

	changed := false
	for _, e := range entries {
		if e.ID == t.self {
			continue
		}

		candidate := RouteEntry{
			DestID:   e.ID,
			Cost:     int(e.Cost) + nhop.Cost,
			OutPort:  nhop.OutPort,
			DestPort: nhop.DestPort,
		}

		existing, exists := t.entries[e.ID]
		if !exists {
			t.entries[e.ID] = candidate
			changed = true
			continue
		}

		if less(candidate, existing) {
			if candidate.Cost < existing.Cost {
				changed = true
			}
			t.entries[e.ID] = candidate
		}
	}

	return changed
}
