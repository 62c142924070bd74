package cvm

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Column headers of the informe diário CSV layout. Only these three are
// consumed; the files carry several more (net worth, redemptions, etc.).
const (
	colCNPJ  = "CNPJ_FUNDO"
	colDate  = "DT_COMPTC"
	colValue = "VL_QUOTA"
)

// ReadArchive walks every .csv member of the zip archive at path and calls
// fn once per data row. Members are semicolon-delimited with a header row,
// encoded in ISO-8859-1; the decoder transcodes them to UTF-8 before
// parsing. A missing required column or malformed CSV is an error: the
// archive itself is broken, not an individual row.
//
// Returning an error from fn stops the walk and propagates the error.
func ReadArchive(path string, fn func(Row) error) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".csv") {
			continue
		}
		if err := readMember(member, fn); err != nil {
			return fmt.Errorf("reading archive member %s: %w", member.Name, err)
		}
	}

	return nil
}

func readMember(member *zip.File, fn func(Row) error) error {
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("opening member: %w", err)
	}
	defer rc.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(rc))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colCNPJ, colDate, colValue} {
		if _, ok := idx[required]; !ok {
			return fmt.Errorf("missing required column %s", required)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %w", line, err)
		}
		line++

		row := Row{}
		if i := idx[colCNPJ]; i < len(record) {
			row.CNPJ = strings.TrimSpace(record[i])
		}
		if i := idx[colDate]; i < len(record) {
			row.Date = strings.TrimSpace(record[i])
		}
		if i := idx[colValue]; i < len(record) {
			row.Value = strings.TrimSpace(record[i])
		}

		if err := fn(row); err != nil {
			return err
		}
	}
}
