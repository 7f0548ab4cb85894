// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/meshnet-inc/meshd/background"
)

type counterProcess struct {
	started  chan struct{}
	finished bool
}

func (state *counterProcess) Run(args interface{}, shutdown <-chan struct{}) {
	close(state.started)
	<-shutdown
	state.finished = true
}

func TestStartStop(t *testing.T) {

	proc1 := &counterProcess{started: make(chan struct{})}
	proc2 := &counterProcess{started: make(chan struct{})}

	processes := background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, nil)

	for i, proc := range []*counterProcess{proc1, proc2} {
		select {
		case <-proc.started:
		case <-time.After(time.Second):
			t.Fatalf("process: %d did not start", i)
		}
	}

	p.Stop()

	if !proc1.finished {
		t.Errorf("process: 1 did not observe shutdown")
	}
	if !proc2.finished {
		t.Errorf("process: 2 did not observe shutdown")
	}
}

// Stop on a nil handle must be a safe no-op
func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
