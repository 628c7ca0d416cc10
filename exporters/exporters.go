// Package exporters renders a coating design Report in the formats the CLI
// can write. Exporters register themselves by name in init.
package exporters

import (
	"io"
	"sort"
	"strings"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
)

type Exporter interface {
	Export(report *Report, w io.Writer) error
}

var exporters = make(map[string]Exporter)

func RegisterExporter(name string, exporter Exporter) {
	exporters[name] = exporter
}

func GetExporter(name string) (Exporter, error) {
	exporter, exists := exporters[name]
	if !exists {
		return nil, cerrors.NewErrorBuilder().
			Category(cerrors.ErrorCategoryConfiguration).
			Operation("get_exporter").
			Messagef("exporter %s not found", name).
			Suggestion("Use one of: " + strings.Join(ListExporters(), ", ")).
			Build()
	}
	return exporter, nil
}

// ListExporters returns the registered exporter names in sorted order.
func ListExporters() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

