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
	lru "github.com/hashicorp/golang-lru/v2"
)

// seenCacheCapacity caps the duplicate-suppression cache. Far above any
// plausible node count for the networks this daemon serves, so eviction
// does not occur in practice.
const seenCacheCapacity = 4096

// SeenCache tracks, per source NodeId, the highest LSP sequence number
// seen so far. Entries are monotonically non-decreasing.
type SeenCache struct {
	cache *lru.Cache[NodeId, int32]
}

// NewSeenCache builds an empty duplicate-suppression cache.
func NewSeenCache() *SeenCache {
	c, err := lru.New[NodeId, int32](seenCacheCapacity)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &SeenCache{cache: c}
}

// Fresh reports whether seq is strictly greater than the highest sequence
// previously recorded for src (or no entry exists yet). It does not
// record seq; call Record once processing has actually happened.
func (s *SeenCache) Fresh(src NodeId, seq int32) bool {
	last, ok := s.cache.Get(src)
	return !ok || last < seq
}

// Record updates the highest-seen sequence number for src. A seq not
// above the current entry leaves it unchanged.
func (s *SeenCache) Record(src NodeId, seq int32) {
	if last, ok := s.cache.Get(src); ok && last >= seq {
		return
	}
	s.cache.Add(src, seq)
}
