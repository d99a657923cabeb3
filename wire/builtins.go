package wire

import "github.com/lguibr/actormesh/bollywood"

func init() {
	registerInternal("Start", bollywood.Start{})
	registerInternal("Shutdown", bollywood.Shutdown{})
	Register("Timeout", bollywood.Timeout{})
	Register("Reject", bollywood.Reject{})
}
