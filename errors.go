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

import "github.com/pkg/errors"

// Each error category carries a distinct Go type so the event loop can
// dispatch on errors.As instead of string matching.

// ConfigError wraps a malformed init file: a line with too few tokens, or
// a port/cost that does not parse as an integer. Fatal; the loader never
// returns a partial result.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string { return "config: " + e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{cause: errors.Errorf(format, args...)}
}

// SocketBootstrapError wraps a fatal failure creating, binding, listening,
// accepting, or connecting a neighbor endpoint. The topology is a fixed
// prerequisite, so this is never retried.
type SocketBootstrapError struct {
	Neighbor NodeId
	cause    error
}

func (e *SocketBootstrapError) Error() string {
	return errors.Wrapf(e.cause, "bootstrap neighbor %s", e.Neighbor).Error()
}
func (e *SocketBootstrapError) Unwrap() error { return e.cause }

// TransientIOError marks a non-blocking read/write that returned
// EAGAIN/EWOULDBLOCK. The event loop ignores it silently and moves on.
type TransientIOError struct {
	cause error
}

func (e *TransientIOError) Error() string { return e.cause.Error() }
func (e *TransientIOError) Unwrap() error { return e.cause }

// PeerIOError marks any other I/O errno on a neighbor socket. The event
// loop logs it and continues; no retry is attempted.
type PeerIOError struct {
	Neighbor NodeId
	cause    error
}

func (e *PeerIOError) Error() string {
	return errors.Wrapf(e.cause, "peer I/O on %s", e.Neighbor).Error()
}
func (e *PeerIOError) Unwrap() error { return e.cause }

// ProtocolError marks a decoded frame that violates the wire contract
// (e.g. entries > 64). The caller drops the frame and logs it at debug
// level.
type ProtocolError struct {
	cause error
}

func (e *ProtocolError) Error() string { return "protocol: " + e.cause.Error() }
func (e *ProtocolError) Unwrap() error { return e.cause }

func newProtocolError(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{cause: errors.Errorf(format, args...)}
}

// CommandError marks an unrecognized stdin command line. Never
// propagated; it exists for callers that want to log what was ignored.
type CommandError struct {
	Command string
}

func (e *CommandError) Error() string {
	return errors.Errorf("unrecognized command %q", e.Command).Error()
}
