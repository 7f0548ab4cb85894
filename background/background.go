// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run tasks in the background and provide a
// clean shutdown of all of them together
package background

import (
	"sync"
)

// Process - interface for any background task
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of background processes
type T struct {
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// Start - run a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
	}

	for _, p := range processes {
		register.wg.Add(1)
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, register.shutdown)
		}(p)
	}

	return register
}

// Stop - signal shutdown and wait for all processes to finish
func (t *T) Stop() {
	if nil == t {
		return
	}
	close(t.shutdown)
	t.wg.Wait()
}
