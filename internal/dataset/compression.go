package dataset

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression is the stream compression wrapping a tabular file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// String returns the format name used in Table.Format.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

// compressionSuffixes lists the suffixes CompressedFile tries, in order.
var compressionSuffixes = []struct {
	ext  string
	kind Compression
}{
	{".gz", CompressionGzip},
	{".bz2", CompressionBzip2},
	{".xz", CompressionXZ},
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// compressionByExt returns the compression implied by a file name suffix.
func compressionByExt(name string) Compression {
	lower := strings.ToLower(name)
	for _, s := range compressionSuffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.kind
		}
	}
	return CompressionNone
}

// compressionByMagic sniffs the leading bytes of a stream.
func compressionByMagic(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(head, bzip2Magic):
		return CompressionBzip2
	case bytes.HasPrefix(head, xzMagic):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// decompress wraps r with a reader for the given compression.
// The returned closer releases decoder resources; it does not close r.
func decompress(r io.Reader, c Compression) (io.Reader, func() error, error) {
	noop := func() error { return nil }
	switch c {
	case CompressionNone:
		return r, noop, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress gzip: %w", err)
		}
		return gz, gz.Close, nil
	case CompressionBzip2:
		return bzip2.NewReader(r), noop, nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress xz: %w", err)
		}
		return xr, noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression: %v", c)
	}
}
