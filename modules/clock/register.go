// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modules/clock/register.go
// Summary: Registers the clock module with the islet host.

package clock

import "github.com/framegrace/islet/host"

func init() {
	host.RegisterModule(ModuleName, New)
}
