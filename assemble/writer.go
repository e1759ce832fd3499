package assemble

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// openOutput creates path and returns the file.File to close plus the
// io.Writer to write through: a gzip.Writer wrapping the file's own writer
// when path's extension indicates compressed output (fileio.DetermineType),
// matching the teacher's own extension-sniffing convention (pileup's and
// interval's readers pick a gzip.Reader the same way), generalized here to
// the write side since the teacher has no compressed-writer precedent of
// its own to copy verbatim. The returned close func flushes and closes the
// gzip layer before the underlying file.
func openOutput(ctx context.Context, path string) (dst file.File, w io.Writer, closeFn func() error, err error) {
	dst, err = file.Create(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	raw := dst.Writer(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		gw := gzip.NewWriter(raw)
		return dst, gw, gw.Close, nil
	}
	return dst, raw, func() error { return nil }, nil
}
