package storage

import "io"

// ProgressFunc receives transfer progress. Total is zero when the upstream
// size is unknown; loaded always advances.
type ProgressFunc func(loaded, total int64)

// progressReader counts bytes as they pass through and reports them to a
// callback. It is used on the upload path so byte transfer to the object
// store surfaces progress events without buffering.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	fn     ProgressFunc
}

// NewProgressReader wraps r so every Read reports cumulative progress to fn.
// A nil fn returns r unchanged.
func NewProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.loaded, p.total)
	}
	return n, err
}
