// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errMonitorNotEnabled = errors.New("monitor server is not enabled")
)
