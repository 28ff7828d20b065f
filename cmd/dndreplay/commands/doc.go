// Package commands implements the dndreplay command line: replaying and
// validating drag scenario files.
package commands
