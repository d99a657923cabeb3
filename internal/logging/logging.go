// Package logging wraps the standard logger just enough to give each
// component a consistent, timestamped prefix.
package logging

import (
	"log"
	"os"
)

// New returns a *log.Logger prefixed with "[component] ", timestamped the
// way the standard library defaults do.
func New(component string) *log.Logger {
	return log.New(os.Stderr, "["+component+"] ", log.LstdFlags)
}
