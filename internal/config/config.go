// Package config parses the bookbuilder CLI surface.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds one replay run's parsed flags.
type Config struct {
	File           string
	Symbol         string
	BookDepth      int
	SequenceNumber uint64
	Stats          bool
}

// Load parses args (normally os.Args[1:]) with its own pflag FlagSet into a
// Config, returning an error if a required flag is missing.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("bookbuilder", pflag.ContinueOnError)

	c := &Config{}
	fs.StringVarP(&c.File, "file", "f", "", "path to the MoldUDP64/ITCH capture file (.pcap or .pcap.gz)")
	fs.StringVarP(&c.Symbol, "symbol", "s", "", "ticker symbol to print the book for")
	fs.IntVarP(&c.BookDepth, "book-depth", "d", 10, "number of price levels to print per side")
	fs.Uint64VarP(&c.SequenceNumber, "sequence-number", "n", 0, "MoldUDP64 sequence number to replay up to (inclusive)")
	fs.BoolVar(&c.Stats, "stats", false, "print run statistics to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var missing []string
	if !fs.Changed("file") {
		missing = append(missing, "--file")
	}
	if !fs.Changed("symbol") {
		missing = append(missing, "--symbol")
	}
	if !fs.Changed("sequence-number") {
		missing = append(missing, "--sequence-number")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required flag(s): %v", missing)
	}

	return c, nil
}
