package pipeline

import (
	"io"
	"os"
	"sync"

	baseerrors "github.com/grailbio/base/errors"
	"v.io/x/lib/vlog"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/fastaindex"
)

// Run wires the reader, parser, decorator, decompressors, sorter and writer
// into one pipeline: it reads a HoCo-space layout from in, decompresses its
// alignments against ix, and writes the translated layout to out, staging
// each contig's body through scratch. Run blocks until the input is fully
// consumed or a stage reports a fatal error, in which case every other
// stage is unblocked via cancellation and the first reported error is
// returned.
func Run(in io.Reader, out io.Writer, ix *fastaindex.Index, scratch *os.File, cfg Config) error {
	lines := make(chan []byte, cfg.QueueSize)
	decoratorWork := make(chan alignmentWork, cfg.QueueSize)
	decoratorTasks := make(chan decoratorTask, cfg.QueueSize)
	sorterItems := make(chan item, cfg.QueueSize)
	writerItems := make(chan item, cfg.QueueSize)

	cancelled := make(chan struct{})
	var cancelOnce sync.Once
	cancel := func() { cancelOnce.Do(func() { close(cancelled) }) }

	var errs baseerrors.Once
	run := func(name string, fn func() error) *sync.WaitGroup {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				vlog.Errorf("pipeline: %s: %v", name, err)
				errs.Set(err)
				cancel()
			}
		}()
		return &wg
	}

	readerWG := run("reader", func() error {
		return runReader(in, cfg.IOBufferSize, lines, cancelled)
	})
	parserWG := run("parser", func() error {
		return runParser(lines, sorterItems, decoratorWork, cancelled)
	})
	decoratorWG := run("decorator", func() error {
		return runDecorator(decoratorWork, ix, decoratorTasks, cancelled)
	})
	decompressWG := run("decompressors", func() error {
		return runDecompressors(decoratorTasks, sorterItems, cfg.ComputeThreads, cancelled)
	})

	// sorterItems has two producers (the parser, for Contig/Edge records,
	// and the decompressor stage, for decompressed Alignment records); it
	// is closed only once both have finished.
	go func() {
		parserWG.Wait()
		decompressWG.Wait()
		close(sorterItems)
	}()

	sorterWG := run("sorter", func() error {
		return runSorter(sorterItems, writerItems, cancelled)
	})

	writeErr := runWriteStage(writerItems, out, scratch, cfg.IOBufferSize)
	if writeErr != nil {
		vlog.Errorf("pipeline: writer: %v", writeErr)
		errs.Set(writeErr)
		cancel()
	}

	readerWG.Wait()
	decoratorWG.Wait()
	sorterWG.Wait()

	return errs.Err()
}

// runWriteStage drains writerItems, applying §4.5's staging rules to each,
// and finalizes the last pending contig once the channel closes. Unlike the
// other stages it runs on the calling goroutine: it is always the last
// consumer in the graph, so there is nothing further for it to unblock by
// running concurrently, and reporting its own error directly avoids an
// extra WaitGroup.
func runWriteStage(writerItems <-chan item, out io.Writer, scratch *os.File, bufferSize int) error {
	w := newWriter(out, scratch, bufferSize)
	for it := range writerItems {
		if err := w.process(it); err != nil {
			return err
		}
	}
	return w.close()
}
