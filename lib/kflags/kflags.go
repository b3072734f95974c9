// Package kflags decouples flag registration from the flag library in use.
//
// Components expose a Flags struct with a Register(set, prefix) method taking
// a kflags.FlagSet. Both the standard library *flag.FlagSet and spf13
// *pflag.FlagSet satisfy the interface, so the same component can be wired
// into plain binaries and cobra commands alike.
package kflags

import "time"

// FlagSet is the subset of flag registration calls components rely on.
type FlagSet interface {
	StringVar(p *string, name string, value string, usage string)
	BoolVar(p *bool, name string, value bool, usage string)
	IntVar(p *int, name string, value int, usage string)
	DurationVar(p *time.Duration, name string, value time.Duration, usage string)
}
