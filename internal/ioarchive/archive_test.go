package ioarchive

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tableHeader = strings.Join([]string{
	"gbifID", "taxonKey", "species", "scientificName",
	"countryCode", "decimalLatitude", "decimalLongitude",
	"eventDate", "basisOfRecord",
}, "\t")

func tableRow(id int) string {
	return strings.Join([]string{
		fmt.Sprintf("%d", 1000+id),
		"2480946",
		"Sterna paradisaea",
		"Sterna paradisaea Pontoppidan, 1763",
		"IS",
		fmt.Sprintf("%d.5", 63+id),
		"-18.1",
		"2023-06-01",
		"HUMAN_OBSERVATION",
	}, "\t")
}

func makeArchive(t *testing.T, entry string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	file, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(file)
	entryWriter, err := w.Create(entry)
	require.NoError(t, err)
	_, err = entryWriter.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, file.Close())
	return path
}

func TestLoad(t *testing.T) {
	lines := []string{tableHeader}
	for i := 0; i < 10; i++ {
		lines = append(lines, tableRow(i))
	}
	path := makeArchive(t, "occurrence.txt", lines)

	rs, skipped, err := Load(path, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 10, rs.Len())

	recs := rs.Records()
	assert.Equal(t, int64(1000), recs[0].Key)
	assert.Equal(t, 2480946, recs[0].TaxonKey)
	assert.Equal(t, "Sterna paradisaea", recs[0].Species)
	assert.Equal(t, "IS", recs[0].Country)
	require.NotNil(t, recs[0].DecimalLatitude)
	assert.InDelta(t, 63.5, *recs[0].DecimalLatitude, 0.001)
	require.NotNil(t, recs[0].DecimalLongitude)
	assert.InDelta(t, -18.1, *recs[0].DecimalLongitude, 0.001)
	// Columns without a dedicated field land in Extra.
	assert.Equal(t, "HUMAN_OBSERVATION", recs[0].Extra["basisOfRecord"])
}

func TestLoadMaxRows(t *testing.T) {
	lines := []string{tableHeader}
	for i := 0; i < 10; i++ {
		lines = append(lines, tableRow(i))
	}
	path := makeArchive(t, "occurrence.txt", lines)

	rs, skipped, err := Load(path, "", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 3, rs.Len())

	// Truncation keeps the first rows in file order.
	recs := rs.Records()
	assert.Equal(t, int64(1000), recs[0].Key)
	assert.Equal(t, int64(1001), recs[1].Key)
	assert.Equal(t, int64(1002), recs[2].Key)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	lines := []string{
		tableHeader,
		tableRow(0),
		"1005\t2480946\tshort row",
		strings.Replace(tableRow(1), "64.5", "not-a-number", 1),
		tableRow(2),
	}
	path := makeArchive(t, "occurrence.txt", lines)

	rs, skipped, err := Load(path, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 2, rs.Len())
}

func TestLoadNamedEntry(t *testing.T) {
	lines := []string{tableHeader, tableRow(0)}
	path := makeArchive(t, "data/records.txt", lines)

	rs, _, err := Load(path, "data/records.txt", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Len())

	_, _, err = Load(path, "no-such-entry.txt", 0)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ArchiveEntryError, gnErr.Code)
}

func TestLoadBadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.zip")
	err := os.WriteFile(path, []byte("not a zip"), 0644)
	require.NoError(t, err)

	_, _, err = Load(path, "", 0)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ArchiveOpenError, gnErr.Code)
}
