// Package testutil contains helper builders and recorders used across tests
// to reduce boilerplate when constructing containers and asserting callback
// behavior. They are not intended for production usage.
package testutil
