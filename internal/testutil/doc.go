// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing command maps and chunk signals. These
// helpers are intentionally minimal and avoid adding third-party
// dependencies. They are not intended for production usage.
package testutil
