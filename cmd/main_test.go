package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
)

const testMaterials = `materials:
  - name: Vacuum
    n: 1
  - name: Silica Substrate
    n: 1.45
    young: 7.27e10
    sigma: 0.167
    phi: 5e-9
  - name: Silica Coating
    n: 1.45
    young: 7.2e10
    sigma: 0.17
    phi: 4e-5
  - name: Titanium Tantala Coating
    n: 2.06539
    young: 1.4e11
    sigma: 0.23
    phi: 2.3e-4
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeMaterials(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "materials.yaml")
	if err := os.WriteFile(path, []byte(testMaterials), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestParseLayerSpecs(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		material  string
		thickness float64
		wantErr   bool
	}{
		{"simple", []string{"Silica:0.25"}, "Silica", 0.25, false},
		{"spaces", []string{"Titanium Tantala Coating : 0.23"}, "Titanium Tantala Coating", 0.23, false},
		{"colon in name", []string{"a:b:100"}, "a:b", 100, false},
		{"missing thickness", []string{"Silica"}, "", 0, true},
		{"missing material", []string{":0.25"}, "", 0, true},
		{"bad number", []string{"Silica:quarter"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := parseLayerSpecs(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", specs)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if specs[0].Material != tt.material || specs[0].Thickness != tt.thickness {
				t.Errorf("parseLayerSpecs() = %+v, want %s/%v", specs[0], tt.material, tt.thickness)
			}
		})
	}
}

func TestDesignWorkflow(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	design := filepath.Join(dir, "etm.yaml")

	out, err := runCommand(t, "-m", mats, "new", design,
		"--layer", "Titanium Tantala Coating:0.25", "--layer", "Silica Coating:0.25",
		"--repeat", "8", "--cap", "Titanium Tantala Coating:0.25")
	if err != nil {
		t.Fatalf("new error = %v", err)
	}
	if !strings.Contains(out, "17 layers") {
		t.Errorf("new output = %q", out)
	}

	// the design carries its materials, so no -m is needed from here on
	out, err = runCommand(t, "info", design)
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	if !strings.Contains(out, "Layers: 17") || !strings.Contains(out, "Substrate: Silica Substrate") {
		t.Errorf("info output = %q", out)
	}

	out, err = runCommand(t, "reflectivity", design, "--phase")
	if err != nil {
		t.Fatalf("reflectivity error = %v", err)
	}
	for _, want := range []string{"Rs: 0.99", "Rp: 0.99", "Phase s:"} {
		if !strings.Contains(out, want) {
			t.Errorf("reflectivity output missing %q: %q", want, out)
		}
	}

	if out, err = runCommand(t, "mechanics", design); err != nil || !strings.Contains(out, "Y para:") {
		t.Errorf("mechanics output = %q, error = %v", out, err)
	}
	if out, err = runCommand(t, "noise", design); err != nil || !strings.Contains(out, "PSD:") {
		t.Errorf("noise output = %q, error = %v", out, err)
	}

	report := filepath.Join(dir, "etm.csv")
	if _, err := runCommand(t, "export", design, "--format", "csv", "--output", report); err != nil {
		t.Fatalf("export error = %v", err)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 18 {
		t.Errorf("csv report has %d lines, want 18", lines)
	}

	if _, err := runCommand(t, "export", design, "--format", "pdf"); err == nil {
		t.Error("export with unknown format expected error")
	}
}

func TestNewPhysicalThickness(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	design := filepath.Join(dir, "single.yaml")

	if _, err := runCommand(t, "-m", mats, "new", design, "--physical", "--layer", "Silica Coating:100"); err != nil {
		t.Fatalf("new error = %v", err)
	}
	out, err := runCommand(t, "info", design)
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	if !strings.Contains(out, "Thickness: 100.000 nm") {
		t.Errorf("info output = %q", out)
	}
}

func TestNewUnknownMaterial(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)

	_, err := runCommand(t, "-m", mats, "new", filepath.Join(dir, "x.yaml"), "--layer", "Hafnia:0.25")
	if err == nil || !strings.Contains(err.Error(), "Hafnia") {
		t.Errorf("new error = %v, want unknown material", err)
	}
}

func TestMaterialsCatalog(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	catalog := filepath.Join(dir, "catalog.db")

	if _, err := runCommand(t, "materials", "import", mats); err == nil {
		t.Error("import without --catalog expected error")
	}

	out, err := runCommand(t, "--catalog", catalog, "materials", "import", mats)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported 4 materials") {
		t.Errorf("import output = %q", out)
	}

	out, err = runCommand(t, "--catalog", catalog, "materials", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, name := range []string{"Vacuum", "Silica Substrate", "Titanium Tantala Coating"} {
		if !strings.Contains(out, name) {
			t.Errorf("list output missing %s: %q", name, out)
		}
	}
}

func TestMaterialsShow(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	catalog := filepath.Join(dir, "catalog.db")

	if _, err := runCommand(t, "materials", "show", "Vacuum"); err == nil {
		t.Error("show without --catalog expected error")
	}
	if _, err := runCommand(t, "--catalog", catalog, "materials", "import", mats); err != nil {
		t.Fatalf("import error = %v", err)
	}

	out, err := runCommand(t, "--catalog", catalog, "materials", "show", "Titanium Tantala Coating")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{"name: Titanium Tantala Coating", "n: 2.06539", "phi: 0.00023"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q: %q", want, out)
		}
	}

	_, err = runCommand(t, "--catalog", catalog, "materials", "show", "Hafnia")
	if !errors.Is(err, cerrors.ErrMaterialNotFound) {
		t.Errorf("show unknown error = %v, want ErrMaterialNotFound", err)
	}
}

func TestReflectivityCriticalAngle(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	glass := filepath.Join(dir, "glass.yaml")
	if err := os.WriteFile(glass, []byte("materials:\n  - name: Glass\n    n: 1.5\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	design := filepath.Join(dir, "prism.yaml")

	if _, err := runCommand(t, "-m", mats, "-m", glass, "new", design, "--superstrate", "Glass",
		"--substrate", "Vacuum", "--physical", "--layer", "Silica Coating:100"); err != nil {
		t.Fatalf("new error = %v", err)
	}
	if _, err := runCommand(t, "reflectivity", design, "--aoi", "20"); err != nil {
		t.Errorf("reflectivity at 20 deg error = %v", err)
	}

	_, err := runCommand(t, "reflectivity", design, "--aoi", "41.8103148957786")
	if !cerrors.IsCategory(err, cerrors.ErrorCategoryNumeric) {
		t.Errorf("reflectivity at the critical angle error = %v, want numeric error", err)
	}
}

func TestExportUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	mats := writeMaterials(t, dir)
	design := filepath.Join(dir, "single.yaml")
	if _, err := runCommand(t, "-m", mats, "new", design, "--layer", "Silica Coating:0.25"); err != nil {
		t.Fatalf("new error = %v", err)
	}

	_, err := runCommand(t, "export", design, "--output", filepath.Join(dir, "missing", "report.txt"))
	if !cerrors.IsCategory(err, cerrors.ErrorCategoryFilesystem) {
		t.Errorf("export error = %v, want filesystem error", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("export error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, cerrors.NewLookupError("get_material", "Hafnia"))
	want := "Error: material \"Hafnia\" not found\n\nSuggestion: Load the material definition before constructing the coating\n"
	if buf.String() != want {
		t.Errorf("printError() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printError(&buf, errors.New("unknown flag: --colour"))
	if buf.String() != "Error: unknown flag: --colour\n" {
		t.Errorf("printError() = %q", buf.String())
	}
}

func TestInvalidLogFormat(t *testing.T) {
	if _, err := runCommand(t, "--log-format", "xml", "materials", "list"); err == nil {
		t.Error("expected error for unknown log format")
	}
}
