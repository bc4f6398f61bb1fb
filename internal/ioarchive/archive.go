package ioarchive

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/gnoccur/pkg/occurrence"
)

// Columns with dedicated Record fields; everything else lands in Extra.
const (
	colID        = "gbifID"
	colTaxonKey  = "taxonKey"
	colSpecies   = "species"
	colSciName   = "scientificName"
	colCountry   = "countryCode"
	colLatitude  = "decimalLatitude"
	colLongitude = "decimalLongitude"
	colEventDate = "eventDate"
)

// Load parses a tab-separated table embedded in a compressed archive.
// entryName selects the file inside the archive; empty picks the first
// .csv/.txt/.tsv entry. maxRows > 0 truncates the result at the first
// maxRows accepted rows in file order — a truncation, not a statistical
// sample. Malformed rows are skipped; their count is returned alongside
// the RecordSet, never silently dropped.
func Load(
	path, entryName string, maxRows int,
) (*occurrence.RecordSet, int, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, 0, OpenError(path, err)
	}
	defer archive.Close()

	entry, err := findEntry(&archive.Reader, path, entryName)
	if err != nil {
		return nil, 0, err
	}

	file, err := entry.Open()
	if err != nil {
		return nil, 0, EntryError(path, entry.Name, err)
	}
	defer file.Close()

	records, skipped, err := parseTable(file, maxRows)
	if err != nil {
		return nil, 0, EntryError(path, entry.Name, err)
	}

	if skipped > 0 {
		slog.Warn("Skipped malformed rows",
			"archive", path, "entry", entry.Name, "skipped", skipped)
	}
	return occurrence.NewRecordSet(records), skipped, nil
}

func findEntry(
	r *zip.Reader, path, entryName string,
) (*zip.File, error) {
	for _, f := range r.File {
		if entryName != "" {
			if f.Name == entryName {
				return f, nil
			}
			continue
		}
		switch {
		case strings.HasSuffix(f.Name, ".csv"),
			strings.HasSuffix(f.Name, ".txt"),
			strings.HasSuffix(f.Name, ".tsv"):
			return f, nil
		}
	}
	return nil, EntryError(
		path, entryName, fmt.Errorf("no table entry in archive"),
	)
}

// parseTable reads a header line and data rows. The service's tables use
// no quoting or escaping, so a plain tab split is the correct parser.
func parseTable(
	r io.Reader, maxRows int,
) ([]occurrence.Record, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("table has no header")
	}
	header := strings.Split(scanner.Text(), "\t")

	var records []occurrence.Record
	var skipped int
	for scanner.Scan() {
		if maxRows > 0 && len(records) == maxRows {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		rec, ok := parseRow(header, strings.Split(line, "\t"))
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return records, skipped, nil
}

func parseRow(header, row []string) (occurrence.Record, bool) {
	var res occurrence.Record
	if len(row) != len(header) {
		return res, false
	}

	for i, col := range header {
		val := row[i]
		if val == "" {
			continue
		}
		switch col {
		case colID:
			id, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return res, false
			}
			res.Key = id
		case colTaxonKey:
			key, err := strconv.Atoi(val)
			if err != nil {
				return res, false
			}
			res.TaxonKey = key
		case colSpecies:
			res.Species = val
		case colSciName:
			res.ScientificName = val
		case colCountry:
			res.Country = val
		case colEventDate:
			res.EventDate = val
		case colLatitude:
			lat, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return res, false
			}
			res.DecimalLatitude = &lat
		case colLongitude:
			lon, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return res, false
			}
			res.DecimalLongitude = &lon
		default:
			if res.Extra == nil {
				res.Extra = make(map[string]string)
			}
			res.Extra[col] = val
		}
	}
	return res, true
}
