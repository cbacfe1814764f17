package container

import (
	"bytes"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// Ensure Codec implements the interface.
var _ driven.ProjectCodec = (*Codec)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec decodes and encodes project containers.
type Codec struct {
	strategy domain.CompressionStrategy
	compress func([]byte) ([]byte, error)
}

// NewCodec creates a codec that writes with the given strategy.
// Unknown strategies behave as CompressionPreferCompressed.
func NewCodec(strategy domain.CompressionStrategy) *Codec {
	if !strategy.IsValid() {
		strategy = domain.CompressionPreferCompressed
	}
	return &Codec{
		strategy: strategy,
		compress: gzipBytes,
	}
}

// Strategy returns the write strategy.
func (c *Codec) Strategy() domain.CompressionStrategy {
	return c.strategy
}

// Compressed reports whether data starts with the gzip header.
func (c *Codec) Compressed(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Decode decompresses data when it carries the gzip header, otherwise treats
// it as plain XML, and parses the result.
func (c *Codec) Decode(data []byte) (*domain.ProjectDocument, error) {
	text := data
	if c.Compressed(data) {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &domain.FormatError{Kind: domain.FormatDecompress, Err: err}
		}
		defer r.Close()

		text, err = io.ReadAll(r)
		if err != nil {
			return nil, &domain.FormatError{Kind: domain.FormatDecompress, Err: err}
		}
		logger.Debug("Decompressed container: %d -> %d bytes", len(data), len(text))
	} else {
		logger.Debug("Container has no gzip header, reading as plain XML")
	}

	text = bytes.TrimPrefix(text, utf8BOM)
	if !utf8.Valid(text) {
		return nil, &domain.FormatError{Kind: domain.FormatEncoding, Detail: "document is not UTF-8"}
	}

	return parseDocument(text)
}

// Encode serialises doc and compresses it according to the strategy. A
// compression failure yields plain XML rather than an error.
func (c *Codec) Encode(doc *domain.ProjectDocument) ([]byte, error) {
	text, err := serializeDocument(doc)
	if err != nil {
		return nil, err
	}

	if c.strategy == domain.CompressionPlainTextOnly {
		return text, nil
	}

	compressed, err := c.compress(text)
	if err != nil {
		logger.Warn("Compression failed, writing plain XML: %v", err)
		return text, nil
	}
	return compressed, nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	probeOnce sync.Once
	probeOK   bool
)

// ProbeCompression checks once per process that gzip round-trips.
func ProbeCompression() bool {
	probeOnce.Do(func() {
		sample := []byte("<probe/>")
		packed, err := gzipBytes(sample)
		if err != nil {
			logger.Warn("Compression probe failed: %v", err)
			return
		}
		r, err := gzip.NewReader(bytes.NewReader(packed))
		if err != nil {
			logger.Warn("Compression probe failed: %v", err)
			return
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		probeOK = err == nil && bytes.Equal(out, sample)
		if !probeOK {
			logger.Warn("Compression probe failed, containers will be written as plain XML")
		}
	})
	return probeOK
}

// ResolveStrategy returns the strategy to use on this host given the
// configured preference.
func ResolveStrategy(configured domain.CompressionStrategy) domain.CompressionStrategy {
	if configured == domain.CompressionPlainTextOnly {
		return domain.CompressionPlainTextOnly
	}
	if !ProbeCompression() {
		return domain.CompressionPlainTextOnly
	}
	return domain.CompressionPreferCompressed
}
