// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Command reelsight-inspect prints the dashboard views in the terminal.

It loads the same six dataset files as the server, by their fixed names in
the working directory, and drives the same dashboard service:

	reelsight-inspect overview
	reelsight-inspect clusters [--cluster 3]
	reelsight-inspect recommend --user 42
	reelsight-inspect surprise

A missing or malformed dataset, an unknown cluster or an unknown user exits
with status 1.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
