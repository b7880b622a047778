// Package log is the small structured-logging seam the core uses for
// non-fatal diagnostics that don't rise to a host.ErrorKind failure:
// the cartridge-load summary and RTC seeding.
package log

import "fmt"

// Logger is the minimal interface GameBoy accepts. Hosts that already
// have their own logging story can adapt it in a few lines; hosts that
// don't care use Nop().
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type stdLogger struct{}

// New returns a Logger that writes to stdout with a level prefix.
func New() Logger { return stdLogger{} }

func (stdLogger) Infof(format string, args ...interface{})  { fmt.Printf("[INFO]\t"+format+"\n", args...) }
func (stdLogger) Errorf(format string, args ...interface{}) { fmt.Printf("[ERROR]\t"+format+"\n", args...) }
func (stdLogger) Debugf(format string, args ...interface{}) { fmt.Printf("[DEBUG]\t"+format+"\n", args...) }

type nopLogger struct{}

// Nop returns a Logger that discards everything; this is GameBoy's
// default so the core stays silent unless a host opts in.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}
