// Command bookbuilder replays a MoldUDP64/ITCH 5.0 capture up to a
// sequence-number cutoff and prints the top-of-book ladder for one symbol.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tkalonso/bookbuilder/internal/capture"
	"github.com/tkalonso/bookbuilder/internal/config"
	"github.com/tkalonso/bookbuilder/internal/replay"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bookbuilder: ")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	src, err := capture.Open(cfg.File)
	if err != nil {
		var openErr *capture.OpenError
		if errors.As(err, &openErr) {
			log.Fatal(openErr)
		}
		log.Fatal(err)
	}
	defer src.Close()

	engine := replay.New(cfg.SequenceNumber)
	if err := engine.Run(src); err != nil {
		var decodeErr *replay.DecodeError
		if errors.As(err, &decodeErr) {
			log.Fatal(decodeErr)
		}
		log.Fatal(err)
	}

	if cfg.Stats {
		printStats(engine.Stats)
	}

	locate, ok := engine.Directory.FindBySymbol(strings.ToUpper(cfg.Symbol))
	if !ok {
		// SymbolNotFound: nothing to print, but still a clean exit.
		return
	}

	fmt.Printf("Book (depth: %d) : %s\n", cfg.BookDepth, cfg.Symbol)
	book, ok := engine.Books.Lookup(locate)
	if !ok {
		return
	}
	if err := book.Render(os.Stdout, cfg.BookDepth); err != nil {
		log.Fatal(err)
	}
}

func printStats(s replay.Stats) {
	fmt.Fprintf(os.Stderr, "frames read:       %s\n", humanize.Comma(int64(s.Frames)))
	fmt.Fprintf(os.Stderr, "packets accepted:  %s\n", humanize.Comma(int64(s.PacketsAccepted)))
	fmt.Fprintf(os.Stderr, "messages decoded:  %s\n", humanize.Comma(int64(s.MessagesDecoded)))
	fmt.Fprintf(os.Stderr, "messages skipped:  %s\n", humanize.Comma(int64(s.MessagesSkipped)))
}
