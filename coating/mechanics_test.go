package coating

import (
	"errors"
	"math"
	"testing"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
	"github.com/bibin-skaria/coatingtk/layers"
)

func TestMechanics_TwoMaterials(t *testing.T) {
	lib := testLibrary(t)
	c, err := New(lib, "Vacuum", "Silica Substrate", []layers.Spec{
		{"Silica Coating", 300},
		{"Titanium Tantala Coating", 100},
	}, lambda0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	m, err := c.Mechanics()
	if err != nil {
		t.Fatalf("Mechanics() error = %v", err)
	}

	// thickness fractions 3/4 and 1/4
	wantYPara := 0.75*7.2e10 + 0.25*1.4e11
	wantYPerp := 1 / (0.75/7.2e10 + 0.25/1.4e11)
	if !approxRel(m.YPara, wantYPara, 1e-12) {
		t.Errorf("YPara = %v, want %v", m.YPara, wantYPara)
	}
	if !approxRel(m.YPerp, wantYPerp, 1e-12) {
		t.Errorf("YPerp = %v, want %v", m.YPerp, wantYPerp)
	}
	if m.YPerp > m.YPara {
		t.Errorf("YPerp %v exceeds YPara %v", m.YPerp, m.YPara)
	}

	// the parallel Poisson ratio ignores layer thickness
	if !approxRel(m.SigmaPara, (0.17+0.23)/2, 1e-14) {
		t.Errorf("SigmaPara = %v, want %v", m.SigmaPara, (0.17+0.23)/2)
	}
	wantSigmaPerp := (0.17*7.2e10*300 + 0.23*1.4e11*100) / (7.2e10*300 + 1.4e11*100)
	if !approxRel(m.SigmaPerp, wantSigmaPerp, 1e-12) {
		t.Errorf("SigmaPerp = %v, want %v", m.SigmaPerp, wantSigmaPerp)
	}

	wantPhiPara := (7.2e10*4e-5*0.75 + 1.4e11*2.3e-4*0.25) / wantYPara
	wantPhiPerp := wantYPerp * (0.75*4e-5/7.2e10 + 0.25*2.3e-4/1.4e11)
	if !approxRel(m.PhiPara, wantPhiPara, 1e-12) {
		t.Errorf("PhiPara = %v, want %v", m.PhiPara, wantPhiPara)
	}
	if !approxRel(m.PhiPerp, wantPhiPerp, 1e-12) {
		t.Errorf("PhiPerp = %v, want %v", m.PhiPerp, wantPhiPerp)
	}
}

func TestMechanics_YPerpNeverExceedsYPara(t *testing.T) {
	lib := testLibrary(t)

	tests := [][]layers.Spec{
		{{"Silica Coating", 1}},
		{{"Silica Coating", 1}, {"Titanium Tantala Coating", 1000}},
		{{"Titanium Tantala Coating", 17}, {"Silica Coating", 3}, {"Titanium Tantala Coating", 250}},
		layers.Repeat([]layers.Spec{{"Silica Coating", 183}, {"Titanium Tantala Coating", 128}}, 17),
	}

	for i, specs := range tests {
		c, err := New(lib, "Vacuum", "Silica Substrate", specs, lambda0)
		if err != nil {
			t.Fatalf("case %d: New() error = %v", i, err)
		}
		yPara, _ := c.YPara()
		yPerp, _ := c.YPerp()
		if yPerp > yPara*(1+1e-15) {
			t.Errorf("case %d: YPerp %v exceeds YPara %v", i, yPerp, yPara)
		}
	}
}

func TestMechanics_EmptyCoating(t *testing.T) {
	lib := testLibrary(t)
	c, _ := New(lib, "Vacuum", "Silica Substrate", nil, lambda0)

	ops := map[string]func() (float64, error){
		"y_para":     c.YPara,
		"y_perp":     c.YPerp,
		"phi_para":   c.PhiPara,
		"phi_perp":   c.PhiPerp,
		"sigma_para": c.SigmaPara,
		"sigma_perp": c.SigmaPerp,
		"phi":        func() (float64, error) { return c.Phi(0.062) },
		"brownian":   func() (float64, error) { return c.BrownianNoise(100, 0.062, 290) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			_, err := op()
			if !errors.Is(err, cerrors.ErrInvalidOperation) {
				t.Fatalf("error = %v, want ErrInvalidOperation", err)
			}
			if !cerrors.IsCategory(err, cerrors.ErrorCategoryNumeric) {
				t.Errorf("error category is not numeric: %v", err)
			}
		})
	}

	if _, err := c.Mechanics(); err == nil {
		t.Error("Mechanics() on empty coating expected error")
	}
}

func TestPhi_ZeroBeam(t *testing.T) {
	lib := testLibrary(t)
	c, _ := New(lib, "Vacuum", "Silica Substrate", []layers.Spec{{"Silica Coating", 100}}, lambda0)

	if _, err := c.Phi(0); !errors.Is(err, cerrors.ErrInvalidOperation) {
		t.Errorf("Phi(0) error = %v, want ErrInvalidOperation", err)
	}
	if _, err := c.BrownianNoise(0, 0.062, 290); !errors.Is(err, cerrors.ErrInvalidOperation) {
		t.Errorf("BrownianNoise(freq 0) error = %v, want ErrInvalidOperation", err)
	}
}

func TestPhi_SingleIsotropicLayer(t *testing.T) {
	lib := testLibrary(t)
	c, _ := New(lib, "Vacuum", "Silica Substrate", []layers.Spec{{"Silica Coating", 1000}}, lambda0)

	const w = 0.062
	y, s, p := 7.2e10, 0.17, 4e-5
	ys, ss := 7.27e10, 0.167
	d := 1000e-9

	// with Y, sigma and phi equal in both directions the anisotropic loss
	// term vanishes
	want := d / (math.Sqrt(math.Pi) * w * y) *
		(p*(ys/(1-ss*ss)-2*s*s*ys*y/(y*(1-ss*ss)*(1-s))) +
			y*y*(1+ss)*p*(1-2*ss)*(1-2*ss)/(ys*(1-s*s)*(1-ss)))

	got, err := c.Phi(w)
	if err != nil {
		t.Fatalf("Phi() error = %v", err)
	}
	if !approxRel(got, want, 1e-12) {
		t.Errorf("Phi() = %v, want %v", got, want)
	}
	if !(got > 0) {
		t.Errorf("Phi() = %v, want positive", got)
	}
}

func TestBrownianNoise(t *testing.T) {
	lib := testLibrary(t)
	c, _ := New(lib, "Vacuum", "Silica Substrate",
		layers.Repeat([]layers.Spec{{"Silica Coating", 183}, {"Titanium Tantala Coating", 128}}, 17), lambda0)

	const (
		freq = 100.0
		w    = 0.062
		temp = 290.0
	)
	phi, err := c.Phi(w)
	if err != nil {
		t.Fatalf("Phi() error = %v", err)
	}

	ys, ss := 7.27e10, 0.167
	want := 2 * 1.380649e-23 * temp / (math.Pow(math.Pi, 1.5) * freq * w * ys) * (1 - ss*ss) * phi

	got, err := c.BrownianNoise(freq, w, temp)
	if err != nil {
		t.Fatalf("BrownianNoise() error = %v", err)
	}
	if !approxRel(got, want, 1e-12) {
		t.Errorf("BrownianNoise() = %v, want %v", got, want)
	}

	doubleT, _ := c.BrownianNoise(freq, w, 2*temp)
	if !approxRel(doubleT, 2*got, 1e-12) {
		t.Errorf("doubling temperature gave %v, want %v", doubleT, 2*got)
	}
	doubleF, _ := c.BrownianNoise(2*freq, w, temp)
	if !approxRel(doubleF, got/2, 1e-12) {
		t.Errorf("doubling frequency gave %v, want %v", doubleF, got/2)
	}
}

func TestBrownianNoise_UsesOwnSubstrate(t *testing.T) {
	lib := testLibrary(t)
	specs := []layers.Spec{{"Silica Coating", 300}, {"Titanium Tantala Coating", 200}}

	a, _ := New(lib, "Vacuum", "Silica Substrate", specs, lambda0)
	b, _ := New(lib, "Vacuum", "Titanium Tantala Coating", specs, lambda0)

	na, _ := a.BrownianNoise(100, 0.062, 290)
	nb, _ := b.BrownianNoise(100, 0.062, 290)
	if na == nb {
		t.Errorf("coatings on different substrates report the same noise %v", na)
	}

	again, _ := a.BrownianNoise(100, 0.062, 290)
	if again != na {
		t.Errorf("BrownianNoise() not deterministic: %v then %v", na, again)
	}
}
