package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/injector"
	"github.com/phil-mansfield/gopic/rand"
)

func TestExampleFileParses(t *testing.T) {
	cons, err := ReadSpeciesConfigString(ExampleSpeciesFile)
	if err != nil {
		t.Fatal(err.Error())
	}

	if len(cons) != 2 {
		t.Fatalf("Expected 2 species, got %d", len(cons))
	}
	assert.Equal(t, "electrons", cons[0].Name)
	assert.Equal(t, "ions", cons[1].Name)

	d, err := cons[0].Build()
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, injector.GaussianFlux, d.Kind())

	d, err = cons[1].Build()
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, injector.Juttner, d.Kind())
	// BulkVelDir = -z with Beta = 0.9.
	mean := d.Mean(0, 0, 0)
	assert.InDelta(t, -0.9/math.Sqrt(1-0.81), mean[2], 1e-13)
}

func TestBuildEachKind(t *testing.T) {
	table := []struct {
		text string
		kind injector.Kind
	}{
		{`[Species "a"]
MomentumDistribution = constant
Uz = 0.1`, injector.Constant},
		{`[Species "a"]
MomentumDistribution = gaussian
UzM = 0.1
UxTh = 0.01
UyTh = 0.01
UzTh = 0.01`, injector.Gaussian},
		{`[Species "a"]
MomentumDistribution = gaussianflux
UyM = 0.05
UyTh = 0.01
FluxNormalAxis = y
FluxDirection = -1`, injector.GaussianFlux},
		{`[Species "a"]
MomentumDistribution = uniform
UxMin = -0.01
UxMax = 0.01`, injector.Uniform},
		{`[Species "a"]
MomentumDistribution = boltzmann
Theta = 0.01
Beta = 0.5
BulkVelDir = y`, injector.Boltzmann},
		{`[Species "a"]
MomentumDistribution = juttner
Theta = 0.5
Beta = -0.5`, injector.Juttner},
		{`[Species "a"]
MomentumDistribution = radial_expansion
UOverR = 0.001`, injector.RadialExpansion},
		{`[Species "a"]
MomentumDistribution = parser
UxExpression = 0.01 * sin(2*pi*z)
UyExpression = 0
UzExpression = x*y*z`, injector.Parser},
	}

	gen := rand.New(rand.Default, 10)
	for i, test := range table {
		cons, err := ReadSpeciesConfigString(test.text)
		if err != nil {
			t.Errorf("%d) %s", i, err.Error())
			continue
		}
		d, err := cons[0].Build()
		if err != nil {
			t.Errorf("%d) %s", i, err.Error())
			continue
		}
		if d.Kind() != test.kind {
			t.Errorf("%d) Expected kind %s, got %s", i, test.kind, d.Kind())
		}
		d.Sample(1, 2, 3, gen)
		d.Mean(1, 2, 3)
	}
}

func TestConfigErrors(t *testing.T) {
	table := []string{
		// No species at all.
		``,
		// Missing MomentumDistribution.
		`[Species "a"]`,
		// Unknown distribution.
		`[Species "a"]
MomentumDistribution = maxwellian`,
		// Unknown variable.
		`[Species "a"]
MomentumDistribution = constant
Vx = 1`,
		// Missing flux axis.
		`[Species "a"]
MomentumDistribution = gaussianflux
FluxDirection = 1`,
		// Bad flux axis.
		`[Species "a"]
MomentumDistribution = gaussianflux
FluxNormalAxis = w
FluxDirection = 1`,
		// Missing flux direction.
		`[Species "a"]
MomentumDistribution = gaussianflux
FluxNormalAxis = x`,
		// Bad flux direction.
		`[Species "a"]
MomentumDistribution = gaussianflux
FluxNormalAxis = x
FluxDirection = 2`,
		// Inverted uniform range.
		`[Species "a"]
MomentumDistribution = uniform
UyMin = 0.5
UyMax = -0.5`,
		// Two temperature representations.
		`[Species "a"]
MomentumDistribution = juttner
ThetaExpression = 0.5
ThetaTable = theta.txt
ThetaTableAxis = r`,
		// Table without an axis.
		`[Species "a"]
MomentumDistribution = boltzmann
ThetaTable = theta.txt`,
		// Bad bulk velocity direction.
		`[Species "a"]
MomentumDistribution = boltzmann
BulkVelDir = q`,
		// Parser with a missing component.
		`[Species "a"]
MomentumDistribution = parser
UxExpression = 1
UyExpression = 1`,
	}

	for i, text := range table {
		if _, err := ReadSpeciesConfigString(text); err == nil {
			t.Errorf("%d) Expected an error from %q", i, text)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	table := []string{
		// Broken expression.
		`[Species "a"]
MomentumDistribution = parser
UxExpression = x +
UyExpression = 0
UzExpression = 0`,
		// Negative central momentum on the flux axis.
		`[Species "a"]
MomentumDistribution = gaussianflux
UzM = -1
FluxNormalAxis = z
FluxDirection = 1`,
		// Missing table file.
		`[Species "a"]
MomentumDistribution = juttner
ThetaTable = does/not/exist.txt
ThetaTableAxis = r`,
		// Broken velocity expression.
		`[Species "a"]
MomentumDistribution = boltzmann
BetaExpression = (x`,
	}

	for i, text := range table {
		cons, err := ReadSpeciesConfigString(text)
		if err != nil {
			t.Errorf("%d) Unexpected parse error: %s", i, err.Error())
			continue
		}
		if _, err := cons[0].Build(); err == nil {
			t.Errorf("%d) Expected a build error from %q", i, text)
		}
	}
}

func TestThermalWiring(t *testing.T) {
	cons, err := ReadSpeciesConfigString(`[Species "a"]
MomentumDistribution = juttner
Theta = 0.5
BetaExpression = x/10
BulkVelDir = -y`)
	if err != nil {
		t.Fatal(err.Error())
	}
	d, err := cons[0].Build()
	if err != nil {
		t.Fatal(err.Error())
	}

	// beta = -0.5 along y at x = 5.
	mean := d.Mean(5, 0, 0)
	assert.InDelta(t, -0.5/math.Sqrt(0.75), mean[1], 1e-13)
	assert.Equal(t, 0.0, mean[0])
	assert.Equal(t, 0.0, mean[2])
}

func TestTabulatedWiring(t *testing.T) {
	dir := t.TempDir()
	thetaFile := filepath.Join(dir, "theta.txt")
	betaFile := filepath.Join(dir, "beta.txt")
	err := os.WriteFile(thetaFile, []byte("0 0.5\n10 0.5\n"), 0644)
	if err != nil {
		t.Fatal(err.Error())
	}
	err = os.WriteFile(betaFile, []byte("0 0.2\n10 0.6\n"), 0644)
	if err != nil {
		t.Fatal(err.Error())
	}

	cons, err := ReadSpeciesConfigString(`[Species "a"]
MomentumDistribution = juttner
ThetaTable = ` + thetaFile + `
ThetaTableAxis = r
BetaTable = ` + betaFile + `
BetaTableAxis = x
BulkVelDir = z`)
	if err != nil {
		t.Fatal(err.Error())
	}
	d, err := cons[0].Build()
	if err != nil {
		t.Fatal(err.Error())
	}

	// beta interpolates to 0.4 at x = 5.
	mean := d.Mean(5, 0, 0)
	assert.InDelta(t, 0.4/math.Sqrt(1-0.16), mean[2], 1e-13)

	gen := rand.New(rand.Default, 1)
	assert.NotPanics(t, func() { d.Sample(3, 4, 0, gen) })
}

func TestReadSpeciesConfigFile(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "species.txt")
	err := os.WriteFile(fname, []byte(ExampleSpeciesFile), 0644)
	if err != nil {
		t.Fatal(err.Error())
	}

	cons, err := ReadSpeciesConfig(fname)
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, 2, len(cons))

	_, err = ReadSpeciesConfig(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
