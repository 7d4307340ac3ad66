// SPDX-License-Identifier: MPL-2.0

// Command appexec launches external executables described by YAML run
// specifications, in serial or scheduler-launched multi-task mode.
package main

func main() {
	Execute()
}
