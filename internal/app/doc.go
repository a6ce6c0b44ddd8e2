// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

// Package app implements the interactive application runtime.
//
// It wires the terminal UI flows and the services into a single process
// lifecycle: authenticate, run the main loop, and start over on logout.
package app
