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

// Command lsrouted runs one node of a link-state routing daemon.
//
// Usage: lsrouted <router-id> <log-filename> <init-filename>
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	router "github.com/bencavins/lsrouted"
)

const usage = "<router-id> <log-filename> <init-filename>"

func main() {
	os.Exit(run())
}

// run exits 0 on clean shutdown, non-zero on argument, config, or fatal
// socket error.
func run() int {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "usage: %s %s\n", os.Args[0], usage)
		return 1
	}

	routerID := router.NodeId(os.Args[1])
	logFilename := os.Args[2]
	initFilename := os.Args[3]

	initFile, err := os.Open(initFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening init file %s: %v\n", initFilename, err)
		return 1
	}
	defer initFile.Close()

	logFile, err := os.OpenFile(logFilename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file %s: %v\n", logFilename, err)
		return 1
	}
	defer logFile.Close()

	log := router.NewLogger(logFile)

	links, err := router.LoadLinks(initFile, routerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	peers, err := router.Connect(links)
	if err != nil {
		log.WithError(err).Error("fatal socket bootstrap error")
		fmt.Fprintf(os.Stderr, "socket bootstrap error: %v\n", err)
		return 1
	}

	log.WithFields(logrus.Fields{"self": string(routerID), "neighbors": peers.Len()}).Info("bootstrap complete")

	r := router.NewRouter(routerID, log, links, peers)
	if err := r.Run(); err != nil {
		log.WithError(err).Error("event loop exited with error")
		return 1
	}

	return 0
}
