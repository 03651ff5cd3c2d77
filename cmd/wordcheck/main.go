// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordcheck interactive checker and its msgpack
batch mode.

wordcheck compares every token of a document against a reference word list
and reports, per task, the five most frequent mismatches together with the
closest reference term. Tasks run in the background while the menu stays
usable; a finished task takes the console, prints its report and gives the
console back to the menu.

# Usage

Start the interactive menu:

	wordcheck

Use a custom config and enable debug logs (written to stderr):

	wordcheck -c ./wordcheck.yaml -d

Run the non-interactive batch mode:

	wordcheck serve < requests.msgpack > responses.msgpack

# Menu

	1. Start a new spellchecking task
	2. Exit
	Active tasks: 0
	>

Option 1 asks for a document path, a reference list path and a y/n
confirmation. Option 2 asks for confirmation, cancels running tasks and waits
for them before exiting. Closing stdin waits for running tasks without
cancelling them. SIGINT and SIGTERM behave like a confirmed exit.

A report looks like:

	Task completed for document: notes.txt, reference list: words.txt
	Top 5 mismatches:
	helo: hello, 3
	wrld: world, 1
	Total mismatches: 4

# Configuration

Config is read from --config, then from the user config dir
(~/.config/wordcheck/config.toml on Linux), then built-in defaults. The
default file is created on first run. Files ending in .yaml or .yml are read
as YAML.

	[dispatch]
	initial_slots = 16
	max_slots = 0

	[index]
	strict_order = false

	[check]
	memoize = true

	[report]
	style = "plain"
	color = true

	[log]
	level = "warn"

	[metrics]
	addr = ""

max_slots bounds how far the task table may grow. Going past it is fatal:
running tasks are cancelled and drained and the process exits with status 1.
A non-empty metrics.addr serves Prometheus metrics on /metrics.

# Reference lists

One term per line. Lists are expected in lexicographic order; an unsorted
list is accepted with a warning unless index.strict_order is set. Ties
between equally close terms go to the term listed first.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
