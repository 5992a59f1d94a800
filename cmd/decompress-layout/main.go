// decompress-layout translates a wtdbg2 .ctg.lay contig layout from
// homopolymer-compressed coordinates back into the coordinates and
// sequences of the original, uncompressed reads.
//
// Usage:
//
//	decompress-layout --input a.ctg.lay --output a.ctg.lay.normal --normal-reads reads.fasta
package main

import (
	"flag"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/fastaindex"
	"github.com/sebschmi/wtdbg2-homopolymer-decompression/pipeline"
)

var (
	inputFlag          = flag.String("input", "", "Input .ctg.lay contig layout, in HoCo coordinates")
	outputFlag         = flag.String("output", "", "Output contig layout, in original coordinates")
	normalReadsFlag    = flag.String("normal-reads", "", "FASTA file of uncompressed reads referenced by the layout")
	queueSizeFlag      = flag.Int("queue-size", 32768, "Capacity of every inter-stage queue")
	ioBufferSizeFlag   = flag.Int("io-buffer-size", 64<<20, "Buffered I/O capacity, in bytes")
	computeThreadsFlag = flag.Int("compute-threads", 1, "Number of parallel decompressor workers")
	logLevelFlag       = flag.String("log-level", "info", "One of off, error, info, debug")
)

func resolveLogLevel(s string) log.Level {
	switch s {
	case "off":
		return log.Off
	case "error":
		return log.Error
	case "info":
		return log.Info
	case "debug":
		return log.Debug
	default:
		log.Panicf("--log-level: unrecognized level %q", s)
		panic("unreachable")
	}
}

func main() {
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage:
  decompress-layout --input a.ctg.lay --output a.ctg.lay.normal --normal-reads reads.fasta

decompress-layout translates a wtdbg2 .ctg.lay contig layout from
homopolymer-compressed coordinates back into the coordinates and sequences
of the original, uncompressed reads. --input, --output and --normal-reads
are required.
`)
		flag.PrintDefaults()
	}

	shutdown := grail.Init()
	defer shutdown()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.SetLevel(resolveLogLevel(*logLevelFlag))

	if *inputFlag == "" || *outputFlag == "" || *normalReadsFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := vcontext.Background()

	in, err := file.Open(ctx, *inputFlag)
	if err != nil {
		log.Panicf("open %v: %v", *inputFlag, err)
	}
	defer in.Close(ctx)

	reads, err := file.Open(ctx, *normalReadsFlag)
	if err != nil {
		log.Panicf("open %v: %v", *normalReadsFlag, err)
	}
	defer reads.Close(ctx)

	fastaScratchPath := *outputFlag + ".normal_index"
	fastaScratch, err := os.Create(fastaScratchPath)
	if err != nil {
		log.Panicf("create %v: %v", fastaScratchPath, err)
	}
	defer fastaScratch.Close()

	log.Info.Printf("building read sequence index from %v", *normalReadsFlag)
	ix, err := fastaindex.BuildParallel(reads.Reader(ctx), fastaScratch, *ioBufferSizeFlag, *queueSizeFlag)
	if err != nil {
		log.Panicf("building read sequence index: %v", err)
	}

	contigScratchPath := *outputFlag + ".current_contig"
	contigScratch, err := os.Create(contigScratchPath)
	if err != nil {
		log.Panicf("create %v: %v", contigScratchPath, err)
	}
	defer contigScratch.Close()

	out, err := file.Create(ctx, *outputFlag)
	if err != nil {
		log.Panicf("create %v: %v", *outputFlag, err)
	}

	cfg := pipeline.Config{
		QueueSize:      *queueSizeFlag,
		IOBufferSize:   *ioBufferSizeFlag,
		ComputeThreads: *computeThreadsFlag,
	}

	log.Info.Printf("translating %v -> %v", *inputFlag, *outputFlag)
	runErr := pipeline.Run(in.Reader(ctx), out.Writer(ctx), ix, contigScratch, cfg)
	closeErr := out.Close(ctx)
	if runErr != nil {
		log.Panicf("translating layout: %v", runErr)
	}
	if closeErr != nil {
		log.Panicf("closing %v: %v", *outputFlag, closeErr)
	}
	os.Remove(contigScratchPath)
}
