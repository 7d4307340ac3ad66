// SPDX-License-Identifier: MPL-2.0

// Package issue builds user-facing error reports. ActionableError wraps
// a failure with the operation that was attempted, the resource involved,
// and concrete suggestions; the CLI renders those either as plain text or
// as markdown through glamour.
package issue
