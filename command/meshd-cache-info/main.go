// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/meshnet-inc/meshd/chainclock"
	"github.com/meshnet-inc/meshd/configuration"
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/pendingindex"
	"github.com/meshnet-inc/meshd/storage"
	"github.com/meshnet-inc/meshd/storagecache"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "meshd-cache-info"
	app.Usage = "inspect the message cache built from a mesh node database"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "accounts",
			Usage:     "print storage units and message counts for accounts",
			ArgsUsage: "ACCOUNT...",
			Action:    runAccounts,
		},
		{
			Name:   "counters",
			Usage:  "print cache occupancy counters after a full rebuild",
			Action: runCounters,
		},
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

// open the database read-only and rebuild the cache from it
func setup(c *cli.Context) error {
	configurationFile := c.GlobalString("config-file")
	if "" == configurationFile {
		return fmt.Errorf("missing configuration file argument")
	}

	options, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		return err
	}

	err = logger.Initialise(options.Logging)
	if nil != err {
		return err
	}

	err = storage.Initialise(options.DatabaseFile(), storage.ReadOnly)
	if nil != err {
		return err
	}

	store := storagecache.NewPoolStore(storage.Pool.Messages, storage.Pool.RentalEvents)
	return storagecache.Initialise(store, pendingindex.None(), chainclock.New())
}

func teardown() {
	_ = storagecache.Finalise()
	storage.Finalise()
	logger.Finalise()
}

func runAccounts(c *cli.Context) error {
	if 0 == c.NArg() {
		return fmt.Errorf("missing account arguments")
	}

	err := setup(c)
	if nil != err {
		return err
	}
	defer teardown()

	w := c.App.Writer
	verbose := c.GlobalBool("verbose")

	for _, arg := range c.Args() {
		n, err := strconv.ParseUint(arg, 10, 64)
		if nil != err {
			return fmt.Errorf("account: %q is not a number: %s", arg, err)
		}
		account := eventrecord.AccountID(n)

		units, err := storagecache.CurrentStorageUnits(account)
		if nil != err {
			return err
		}
		fmt.Fprintf(w, "account: %d  storage units: %d\n", account, units)

		if !verbose {
			continue
		}
		for b := eventrecord.Bucket(0); b.IsValid(); b += 1 {
			count, err := storagecache.MessageCount(account, b, true)
			if nil != err {
				return err
			}
			fmt.Fprintf(w, "  %-15s %d\n", b, count)
		}
	}
	return nil
}

func runCounters(c *cli.Context) error {
	err := setup(c)
	if nil != err {
		return err
	}
	defer teardown()

	entries, slots, scans := storagecache.ReadCounters()
	fmt.Fprintf(c.App.Writer, "count entries: %d\nrental slots:  %d\nscans running: %d\n", entries, slots, scans)
	return nil
}
