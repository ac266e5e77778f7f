package ingest_service

import (
	"context"

	"github.com/podium-optique/catalog/domain/app"
)

// DefaultBatchSize bounds both peak memory and transaction size.
const DefaultBatchSize = 1000

// LensBatchWriter is the store-side contract of the loader. Prepare runs
// the total-replacement precondition (the destination table is emptied in
// its own transaction before any batch); WriteBatch commits one batch as
// one transaction.
type LensBatchWriter interface {
	Prepare(ctx context.Context) error
	WriteBatch(ctx context.Context, batch []app.Lens) error
}

// BatchLoader buffers the record stream into fixed-size batches and
// flushes each through the writer. A failed flush aborts the run; the
// table keeps whatever the previous batches committed.
type BatchLoader struct {
	writer LensBatchWriter
	size   int
	buf    []app.Lens
	total  int
}

func NewBatchLoader(w LensBatchWriter, size int) *BatchLoader {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchLoader{writer: w, size: size, buf: make([]app.Lens, 0, size)}
}

func (this *BatchLoader) Add(ctx context.Context, l app.Lens) error {
	this.buf = append(this.buf, l)
	if len(this.buf) < this.size {
		return nil
	}
	return this.Flush(ctx)
}

// Flush writes the buffered partial batch, if any. Call once after the
// stream ends.
func (this *BatchLoader) Flush(ctx context.Context) error {
	if len(this.buf) == 0 {
		return nil
	}
	if err := this.writer.WriteBatch(ctx, this.buf); err != nil {
		return err
	}
	this.total += len(this.buf)
	this.buf = this.buf[:0]
	return nil
}

// Total is the number of records written so far.
func (this *BatchLoader) Total() int {
	return this.total
}
