// SPDX-License-Identifier: MPL-2.0

package main

import "forge-cli/cmd/forge"

func main() {
	cmd.Execute()
}
