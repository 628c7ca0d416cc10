package exporters

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// YAMLExporter writes the full report as a YAML document.
type YAMLExporter struct{}

func init() {
	RegisterExporter("yaml", &YAMLExporter{})
}

func (e *YAMLExporter) Export(report *Report, w io.Writer) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %v", err)
	}
	_, err = w.Write(data)
	return err
}
