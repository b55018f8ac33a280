// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the sync engine, its background job, and the optional local
// monitor server into a single process lifecycle.
package client
