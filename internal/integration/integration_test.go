// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vepanno/internal/app"
)

const headerVCF = `##fileformat=VCFv4.2
##INFO=<ID=DP,Number=1,Type=Integer,Description="Depth">
##INFO=<ID=CSQ,Number=.,Type=String,Description="Consequence annotations from Ensembl VEP. Format: Allele|Consequence|IMPACT|SYMBOL|Gene">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
`

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestAnnotateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	tsv := write(t, dir, "map.tsv", "ENSG1\t0.9\nENSG2\thigh\n")
	vcfIn := write(t, dir, "in.vcf", headerVCF+
		"1\t100\t.\tA\tG\t.\tPASS\tDP=5;CSQ=G|missense|MODERATE|BRCA2|ENSG1,G|intron|LOW|BRCA2|ENSG9\n"+
		"1\t200\t.\tC\tT\t.\tPASS\tDP=3\n")

	var out, errb bytes.Buffer
	code := app.Run([]string{"--tag", "SCORE", "--table", tsv, "--quiet", vcfIn}, &out, &errb)
	require.Equal(t, 0, code, "stderr: %s", errb.String())

	got := out.String()
	assert.Contains(t, got, `Format: Allele|Consequence|IMPACT|SYMBOL|Gene|SCORE">`)
	assert.Contains(t, got, "CSQ=G|missense|MODERATE|BRCA2|ENSG1|0.9,G|intron|LOW|BRCA2|ENSG9|")
	// Records without CSQ pass through untouched.
	assert.Contains(t, got, "1\t200\t.\tC\tT\t.\tPASS\tDP=3\n")
	// Header lines come out in order, before the records.
	require.True(t, strings.HasPrefix(got, "##fileformat=VCFv4.2\n"))
}

func TestAnnotateByGeneFieldName(t *testing.T) {
	dir := t.TempDir()
	tsv := write(t, dir, "map.tsv", "BRCA2\tyes\n")
	vcfIn := write(t, dir, "in.vcf", headerVCF+
		"1\t100\t.\tA\tG\t.\tPASS\tCSQ=G|missense|MODERATE|BRCA2|ENSG1\n")

	var out, errb bytes.Buffer
	code := app.Run([]string{
		"--tag", "KNOWN", "--table", tsv, "--gene-field", "SYMBOL", "--quiet", vcfIn,
	}, &out, &errb)
	require.Equal(t, 0, code, "stderr: %s", errb.String())
	assert.Contains(t, out.String(), "CSQ=G|missense|MODERATE|BRCA2|ENSG1|yes")
}

func TestMissingTableIsFatal(t *testing.T) {
	dir := t.TempDir()
	vcfIn := write(t, dir, "in.vcf", headerVCF)

	var out, errb bytes.Buffer
	code := app.Run([]string{"--tag", "T", "--table", filepath.Join(dir, "nope.tsv"), "--quiet", vcfIn}, &out, &errb)
	assert.Equal(t, 2, code)
	assert.Contains(t, errb.String(), "nope.tsv")
	assert.Zero(t, out.Len(), "no output may be written on a startup failure")
}

func TestEmptyTableIsFatal(t *testing.T) {
	dir := t.TempDir()
	tsv := write(t, dir, "map.tsv", "# nothing usable\n")
	vcfIn := write(t, dir, "in.vcf", headerVCF)

	var out, errb bytes.Buffer
	code := app.Run([]string{"--tag", "T", "--table", tsv, "--quiet", vcfIn}, &out, &errb)
	assert.Equal(t, 2, code)
	assert.Contains(t, errb.String(), "no usable rows")
}

func TestBadUsageExit2(t *testing.T) {
	var out, errb bytes.Buffer
	code := app.Run([]string{"--table", "x.tsv"}, &out, &errb)
	assert.Equal(t, 2, code)
	assert.Contains(t, errb.String(), "--tag is required")
	assert.Contains(t, errb.String(), "Usage")
}

func TestGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tsv := write(t, dir, "map.tsv", "ENSG1\tv\n")
	vcfIn := write(t, dir, "in.vcf", headerVCF+
		"1\t100\t.\tA\tG\t.\tPASS\tCSQ=G|m|M|S|ENSG1\n")
	outPath := filepath.Join(dir, "out.vcf.gz")

	var out, errb bytes.Buffer
	code := app.Run([]string{
		"--tag", "T", "--table", tsv, "--output", outPath, "-O", "z", "--quiet", vcfIn,
	}, &out, &errb)
	require.Equal(t, 0, code, "stderr: %s", errb.String())

	// The tool reads its own gzip output back.
	var out2, errb2 bytes.Buffer
	code = app.Run([]string{"--tag", "T2", "--table", tsv, "--quiet", outPath}, &out2, &errb2)
	require.Equal(t, 0, code, "stderr: %s", errb2.String())
	assert.Contains(t, out2.String(), "CSQ=G|m|M|S|ENSG1|v|v")
}
