package config

import "testing"

func TestLoadRequiresFileSymbolAndSequence(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error when required flags are missing")
	}
}

func TestLoadParsesShortAndLongFlags(t *testing.T) {
	c, err := Load([]string{"-f", "trace.pcap", "--symbol", "AAPL", "-n", "42", "-d", "5", "--stats"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.File != "trace.pcap" || c.Symbol != "AAPL" || c.SequenceNumber != 42 || c.BookDepth != 5 || !c.Stats {
		t.Fatalf("got %+v", c)
	}
}

func TestLoadDefaultsBookDepth(t *testing.T) {
	c, err := Load([]string{"--file", "trace.pcap", "--symbol", "AAPL", "--sequence-number", "1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BookDepth != 10 {
		t.Fatalf("BookDepth = %d, want default 10", c.BookDepth)
	}
}
