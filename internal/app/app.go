// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"vepanno-core/anno"
	"vepanno-core/vcf"
	"vepanno/internal/cli"
	"vepanno/internal/logging"
	"vepanno/internal/pipeline"
	"vepanno/internal/version"
	"vepanno/internal/writers"
)

// RunContext drives one annotation run: parse flags, load the mapping
// table, patch the CSQ header declaration, then stream every record
// through the rewriter pipeline. Exit codes follow the house scheme:
// 0 ok, 2 configuration/load error, 3 write error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("vepanno")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "vepanno version %s\n", version.Version)
		return 0
	}

	log := logging.Discard()
	if !opts.Quiet {
		log = logging.New(stderr, opts.LogLevel)
	}
	log = log.With("run_id", uuid.NewString())

	// All fatal conditions live here, before any output is produced.
	table, err := anno.LoadTable(opts.TableFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("mapping table loaded", "path", opts.TableFile, "rows", table.Len())

	in, err := vcf.Open(opts.VCFFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = in.Close() }()

	r := vcf.NewReader(in)
	hdr, err := r.ReadHeader()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if !hdr.AnnotateInfo("CSQ", opts.Tag) {
		log.Warn("no CSQ Format declaration in header; description left unchanged")
	}
	keyField := resolveKeyField(hdr, opts, log)

	sink, err := writers.OpenSink(stdout, opts.Output, opts.OutputType)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	outw := bufio.NewWriter(sink)

	fail := func(werr error) int {
		_ = sink.Close()
		if writers.IsBrokenPipe(werr) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}

	if _, werr := hdr.WriteTo(outw); werr != nil {
		return fail(werr)
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	perr := pipeline.ForEachRecord(parent,
		pipeline.Config{Threads: threads, InfoKey: "CSQ"},
		r.Next,
		func() *anno.Rewriter { return anno.NewRewriter(table, keyField) },
		func(line []byte) error {
			if _, werr := outw.Write(line); werr != nil {
				return werr
			}
			return outw.WriteByte('\n')
		},
	)

	if werr := outw.Flush(); werr != nil {
		return fail(werr)
	}
	if werr := sink.Close(); werr != nil && !writers.IsBrokenPipe(werr) {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}

	if perr != nil {
		if writers.IsBrokenPipe(perr) {
			return 0
		}
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	if rerr := r.Err(); rerr != nil {
		_, _ = fmt.Fprintln(stderr, rerr)
		return 3
	}
	log.Info("done")
	return 0
}

// resolveKeyField picks the 0-based CSQ sub-field used for lookups: an
// explicit --gene-index wins, otherwise --gene-field is resolved
// against the header's Format declaration, falling back to the
// conventional Gene position. Mismatches warn rather than fail; a
// wrong index degrades to "no value appended" per record.
func resolveKeyField(hdr *vcf.Header, opts cli.Options, log *slog.Logger) int {
	fields := hdr.InfoFormatFields("CSQ")

	if opts.GeneIndex >= 0 {
		if len(fields) > 0 && opts.GeneIndex >= len(fields) {
			log.Warn("gene index beyond declared CSQ sub-fields",
				"index", opts.GeneIndex, "declared", len(fields))
		}
		return opts.GeneIndex
	}
	for i, f := range fields {
		if f == opts.GeneField {
			log.Debug("resolved gene sub-field", "name", f, "index", i)
			return i
		}
	}
	log.Warn("gene sub-field not declared in CSQ Format; using conventional position",
		"name", opts.GeneField, "index", anno.DefaultKeyField)
	return anno.DefaultKeyField
}

// Run is the background-context convenience wrapper.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
