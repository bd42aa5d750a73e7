// internal/cli/options_test.go
package cli

import (
	"io"
	"strings"
	"testing"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("vepanno")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParseArgsDefaults(t *testing.T) {
	opt, err := parse(t, "--tag", "CADD", "--table", "map.tsv")
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opt.VCFFile != "-" {
		t.Errorf("VCFFile = %q, want -", opt.VCFFile)
	}
	if opt.GeneField != "Gene" || opt.GeneIndex != -1 {
		t.Errorf("gene selection defaults = %q %d", opt.GeneField, opt.GeneIndex)
	}
	if opt.OutputType != "v" || opt.Output != "-" {
		t.Errorf("output defaults = %q %q", opt.OutputType, opt.Output)
	}
}

func TestParseArgsPositionalInput(t *testing.T) {
	opt, err := parse(t, "--tag", "T", "--table", "m.tsv", "in.vcf.gz")
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opt.VCFFile != "in.vcf.gz" {
		t.Errorf("VCFFile = %q", opt.VCFFile)
	}
}

func TestParseArgsValidation(t *testing.T) {
	bad := [][]string{
		{"--table", "m.tsv"},                                       // missing --tag
		{"--tag", "T"},                                             // missing --table
		{"--tag", "T", "--table", "m.tsv", "a.vcf", "b.vcf"},       // two inputs
		{"--tag", "T", "--table", "m.tsv", "--vcf", "a", "b.vcf"},  // --vcf + positional
		{"--tag", "T", "--table", "m.tsv", "--threads", "-1"},      // bad threads
		{"--tag", "T", "--table", "m.tsv", "--output-type", "bcf"}, // bad type
		{"--tag", "T", "--table", "m.tsv", "--gene-index", "-2"},   // bad index
	}
	for _, argv := range bad {
		if _, err := parse(t, argv...); err == nil {
			t.Errorf("ParseArgs(%v) should fail", argv)
		}
	}
}

func TestParseArgsUsageMentionsTag(t *testing.T) {
	fs := NewFlagSet("vepanno")
	var sb strings.Builder
	fs.SetOutput(&sb)
	fs.Usage()
	if !strings.Contains(sb.String(), "--tag NAME --table FILE") {
		t.Errorf("usage text missing synopsis: %q", sb.String())
	}
}
