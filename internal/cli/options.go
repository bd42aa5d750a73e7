// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"vepanno/internal/cliutil"
	"vepanno/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Annotation inputs
	Tag       string // new sub-field name appended to every transcript
	TableFile string // tab-separated key→value mapping table
	VCFFile   string // input VCF ("-" = stdin)

	// Key sub-field selection
	GeneField string // resolved against the header's Format declaration
	GeneIndex int    // explicit 0-based override; -1 = resolve by name

	// Performance
	Threads int

	// Output
	Output     string // output path ("-" = stdout)
	OutputType string // "v" plain VCF, "z" gzip

	// Misc
	Quiet    bool
	LogLevel string
	Version  bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: add tags to the CSQ field of VEP-annotated VCFs

Joins a gene→value TSV table onto every CSQ transcript, appending the
matched value as one new trailing sub-field, and extends the CSQ header
description accordingly.

Version: %s

Usage: %s --tag NAME --table FILE [options] [in.vcf[.gz]]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Tag, "tag", "", "name of the appended sub-field [*]")
	fs.StringVar(&opt.TableFile, "table", "", "TSV mapping file: gene<TAB>value [*]")
	fs.StringVar(&opt.VCFFile, "vcf", "", "input VCF (or positional; '-' = stdin) [-]")

	fs.StringVar(&opt.GeneField, "gene-field", "Gene", "CSQ sub-field holding the lookup key, by Format name [Gene]")
	fs.IntVar(&opt.GeneIndex, "gene-index", -1, "0-based CSQ sub-field index of the lookup key (-1 = resolve --gene-field) [-1]")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	fs.StringVar(&opt.Output, "output", "-", "output path ('-' = stdout) [-]")
	fs.StringVar(&opt.OutputType, "output-type", "v", "output type: v (plain VCF) | z (gzip) [v]")
	fs.StringVar(&opt.OutputType, "O", "v", "alias of --output-type")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress log output [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.Tag == "" {
		return opt, errors.New("--tag is required")
	}
	if opt.TableFile == "" {
		return opt, errors.New("--table is required")
	}
	switch {
	case opt.VCFFile != "" && len(posArgs) > 0:
		return opt, errors.New("--vcf conflicts with a positional input")
	case len(posArgs) > 1:
		return opt, fmt.Errorf("expected at most one input, got %d", len(posArgs))
	case len(posArgs) == 1:
		opt.VCFFile = posArgs[0]
	case opt.VCFFile == "":
		opt.VCFFile = "-"
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.GeneIndex < -1 {
		return opt, errors.New("--gene-index must be ≥ -1")
	}
	if opt.OutputType != "v" && opt.OutputType != "z" {
		return opt, fmt.Errorf("invalid --output-type %q", opt.OutputType)
	}
	return opt, nil
}
