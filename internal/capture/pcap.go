// Package capture opens a classic-format libpcap trace file — transparently
// decompressing it first if it is gzip-compressed — and yields the raw
// link-layer frames it contains in capture order.
package capture

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket/pcapgo"
	"github.com/klauspost/compress/gzip"
)

// OpenError reports a failure to open or recognize a trace file: the path
// doesn't exist, isn't readable, or isn't a valid pcap file once opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("capture: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Source reads link-layer frames from an opened trace file.
type Source struct {
	file   *os.File
	closer io.Closer
	reader *pcapgo.Reader
}

var gzipMagic = [2]byte{0x1f, 0x8b}

// Open opens the trace file at path. Files beginning with the gzip magic
// number are transparently decompressed before libpcap parsing begins.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	buffered := bufio.NewReader(f)
	magic, err := buffered.Peek(2)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	var r io.Reader = buffered
	var closer io.Closer = f
	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, gzErr := gzip.NewReader(buffered)
		if gzErr != nil {
			f.Close()
			return nil, &OpenError{Path: path, Err: gzErr}
		}
		r = gz
		closer = gzipCloser{gz: gz, file: f}
	}

	pr, err := pcapgo.NewReader(r)
	if err != nil {
		closer.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	return &Source{file: f, closer: closer, reader: pr}, nil
}

// gzipCloser closes both the gzip stream and the underlying file.
type gzipCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (c gzipCloser) Close() error {
	gzErr := c.gz.Close()
	fileErr := c.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// Close releases the trace file (and any decompressor wrapping it).
func (s *Source) Close() error {
	return s.closer.Close()
}

// Next returns the next frame's raw bytes in capture order, or io.EOF once
// the trace is exhausted.
func (s *Source) Next() ([]byte, error) {
	data, _, err := s.reader.ReadPacketData()
	if err != nil {
		return nil, err
	}
	return data, nil
}
