//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package main is the entry point for defectaudit.
package main

import (
	"fmt"
	"os"

	"github.com/invops/defectaudit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
