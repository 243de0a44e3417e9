// Package export saves grade sheets that the panel "navigates" to. In a
// browser that navigation is a file download; here the file lands in the
// configured export directory.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/backend"
	"gradebook/internal/config"
)

// Fetcher downloads a target URL.
type Fetcher interface {
	Get(ctx context.Context, target string) (backend.Download, error)
}

// Downloader saves navigation targets to Dir, converting CSV sheets to
// workbooks when Format is xlsx.
type Downloader struct {
	Fetcher Fetcher
	Dir     string
	Format  string
}

// NewDownloader creates a downloader from the export settings in cfg.
func NewDownloader(f Fetcher, cfg *config.Config) *Downloader {
	return &Downloader{Fetcher: f, Dir: cfg.ExportDir, Format: cfg.ExportFormat}
}

// Navigate downloads target and returns the path of the saved file.
func (d *Downloader) Navigate(ctx context.Context, target string) (string, error) {
	dl, err := d.Fetcher.Get(ctx, target)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", target, err)
	}
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	dest := filepath.Join(d.Dir, filepath.Base(dl.Name))
	if d.Format == config.FormatXLSX && strings.EqualFold(filepath.Ext(dest), ".csv") {
		dest = strings.TrimSuffix(dest, filepath.Ext(dest)) + ".xlsx"
		if err := WriteWorkbook(dl.Body, dest); err != nil {
			return "", err
		}
		return dest, nil
	}

	if err := os.WriteFile(dest, dl.Body, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, nil
}

// WriteWorkbook converts CSV data into a single-sheet workbook at dest.
func WriteWorkbook(data []byte, dest string) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(dest); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
