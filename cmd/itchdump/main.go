// Command itchdump reads a MoldUDP64/ITCH 5.0 capture file and prints every
// recognized message in human-readable form, for inspecting a trace by hand.
//
// Usage:
//
//	itchdump -f trace.pcap           # decode every accepted packet
//	itchdump -f trace.pcap.gz        # gzip-compressed captures work the same
//	itchdump -f trace.pcap -x        # also dump raw hex alongside decoded output
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/tkalonso/bookbuilder/internal/capture"
	"github.com/tkalonso/bookbuilder/internal/itch"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("itchdump: ")

	path := pflag.StringP("file", "f", "", "path to the capture file (.pcap or .pcap.gz)")
	showHex := pflag.BoolP("hex", "x", false, "print raw hex alongside decoded output")
	pflag.Parse()

	if *path == "" {
		log.Fatal("missing required flag: --file")
	}

	src, err := capture.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	for {
		frame, err := src.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		if !capture.Accepted(frame) {
			continue
		}
		hdr, body, err := capture.DecodeMoldHeader(frame)
		if err != nil {
			continue
		}
		walkErr := capture.Messages(body, hdr.MessageCount, func(payload []byte) error {
			if *showHex {
				printHex(payload)
			}
			printMessage(payload)
			return nil
		})
		if walkErr != nil {
			log.Fatal(walkErr)
		}
	}
}

func printMessage(payload []byte) {
	e, err := itch.Decode(payload)
	if err != nil {
		fmt.Printf("BADMSG   %v\n", err)
		return
	}
	if e == nil {
		if len(payload) > 0 {
			fmt.Printf("UNKNOWN  type=%c (0x%02x) len=%d\n", payload[0], payload[0], len(payload))
		}
		return
	}

	switch m := e.(type) {
	case itch.AddOrder:
		tag := "ADD     "
		if m.Type == itch.MsgAddOrderMPID {
			tag = "ADD+MPID"
			fmt.Printf("%s %s  locate=%-5d  stock=%-8s  ref=%-10d  %4s  %6d @ %s  mpid=%s\n",
				tag, fmtTimestamp(m.Timestamp), m.StockLocate, stockString(m.Stock[:]), m.Reference,
				fmtSide(m.Side), m.Shares, fmtPrice4(m.Price), stockString(m.Attribution[:]))
			return
		}
		fmt.Printf("%s %s  locate=%-5d  stock=%-8s  ref=%-10d  %4s  %6d @ %s\n",
			tag, fmtTimestamp(m.Timestamp), m.StockLocate, stockString(m.Stock[:]), m.Reference,
			fmtSide(m.Side), m.Shares, fmtPrice4(m.Price))

	case itch.ExecutedOrder:
		fmt.Printf("EXEC     %s  locate=%-5d  ref=%-10d  shares=%6d  match=%d\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, m.Reference, m.ExecutedShares, m.MatchNumber)

	case itch.ExecutedWithPriceOrder:
		fmt.Printf("EXEC+PX  %s  locate=%-5d  ref=%-10d  shares=%6d  match=%-10d  printable=%v  @ %s\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, m.Reference, m.ExecutedShares, m.MatchNumber, m.Printable, fmtPrice4(m.Price))

	case itch.CancelOrder:
		fmt.Printf("CANCEL   %s  locate=%-5d  ref=%-10d  canceled=%d\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, m.Reference, m.CanceledShares)

	case itch.DeleteOrder:
		fmt.Printf("DELETE   %s  locate=%-5d  ref=%d\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, m.Reference)

	case itch.ReplaceOrder:
		fmt.Printf("REPLACE  %s  locate=%-5d  orig=%-10d  new=%-10d  %6d @ %s\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, m.OriginalReference, m.NewReference, m.Shares, fmtPrice4(m.Price))

	case itch.StockDirectory:
		fmt.Printf("STOCKDIR %s  locate=%-5d  stock=%-8s  mktCat=%c  finStatus=%c  lotSize=%d\n",
			fmtTimestamp(m.Timestamp), m.StockLocate, stockString(m.Stock[:]), m.MarketCategory, m.FinancialStatus, m.RoundLotSize)
	}
}

func fmtTimestamp(nanos uint64) string {
	d := time.Duration(nanos) * time.Nanosecond
	h := int(d.Hours())
	mi := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	us := (nanos / 1000) % 1000000
	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, mi, s, us)
}

func stockString(b []byte) string {
	return strings.TrimRight(string(b), " ")
}

func fmtPrice4(raw uint32) string {
	return fmt.Sprintf("%d.%04d", raw/10000, raw%10000)
}

func fmtSide(s itch.Side) string {
	switch s {
	case itch.SideBuy:
		return "BUY"
	case itch.SideSell:
		return "SELL"
	default:
		return string(rune(s))
	}
}

func printHex(data []byte) {
	var sb strings.Builder
	sb.WriteString("         hex: ")
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			sb.WriteString("\n              ")
		}
		fmt.Fprintf(&sb, "%02x ", b)
	}
	fmt.Fprintln(os.Stdout, sb.String())
}
