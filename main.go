// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Command seedkit runs dependency-ordered database seeds.
package main

import (
	"seedkit/cli/cmd"
)

func main() {
	cmd.Execute()
}
