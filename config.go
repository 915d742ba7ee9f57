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
	"io"
	"strconv"
	"strings"
)

// Init-file lines are five tokens, SRC OUT_PORT DEST DEST_PORT COST,
// split on space, tab, comma, '<' or '>'.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', ',', '<', '>', '\t':
		return true
	}
	return false
}

// LoadLinks reads an init file and returns the direct links declared for
// routerID, in file order. A line is retained iff its first token equals
// routerID. Matching lines with fewer than five tokens, a non-integer
// port/cost, or a repeated destination return a *ConfigError.
func LoadLinks(r io.Reader, routerID NodeId) ([]Link, error) {
	var links []Link
	seen := map[NodeId]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.FieldsFunc(line, isDelimiter)
		if len(tokens) == 0 {
			continue
		}
		if NodeId(tokens[0]) != routerID {
			continue
		}

		if len(tokens) < 5 {
			return nil, newConfigError("line %d: expected 5 tokens after matching %q, got %d", lineNo, routerID, len(tokens))
		}

		outPort, err := strconv.ParseUint(tokens[1], 10, 16)
		if err != nil {
			return nil, newConfigError("line %d: out_port %q is not a valid port: %v", lineNo, tokens[1], err)
		}

		destID := NodeId(tokens[2])

		destPort, err := strconv.ParseUint(tokens[3], 10, 16)
		if err != nil {
			return nil, newConfigError("line %d: dest_port %q is not a valid port: %v", lineNo, tokens[3], err)
		}

		cost, err := strconv.Atoi(tokens[4])
		if err != nil {
			return nil, newConfigError("line %d: cost %q is not an integer: %v", lineNo, tokens[4], err)
		}
		if cost < 0 {
			return nil, newConfigError("line %d: cost %d is negative", lineNo, cost)
		}

		if seen[destID] {
			return nil, newConfigError("line %d: duplicate link declaration for neighbor %s", lineNo, destID)
		}
		seen[destID] = true

		links = append(links, Link{
			DestID:   destID,
			Cost:     cost,
			OutPort:  uint16(outPort),
			DestPort: uint16(destPort),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, newConfigError("reading init file: %v", err)
	}

	return links, nil
}
