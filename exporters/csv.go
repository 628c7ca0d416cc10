package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zstd"
)

var csvHeader = []string{"index", "material", "thickness_nm", "n", "optical_thickness"}

// CSVExporter writes the layer table, one row per layer.
type CSVExporter struct{}

// CompressedCSVExporter writes the CSV layer table as a zstd stream.
type CompressedCSVExporter struct{}

func init() {
	RegisterExporter("csv", &CSVExporter{})
	RegisterExporter("csv+zstd", &CompressedCSVExporter{})
}

func (e *CSVExporter) Export(report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %v", err)
	}

	for _, row := range report.Layers {
		record := []string{
			strconv.Itoa(row.Index),
			row.Material,
			formatFloat(row.Thickness),
			formatFloat(row.N),
			formatFloat(row.Optical),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write layer %d: %v", row.Index, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (e *CompressedCSVExporter) Export(report *Report, w io.Writer) error {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %v", err)
	}

	if err := (&CSVExporter{}).Export(report, encoder); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
