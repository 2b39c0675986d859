/*package config reads species momentum configuration from gcfg-style ini
files and builds the matching injector.MomentumDistribution values.

Each [Species "name"] section selects one distribution with
MomentumDistribution and supplies its parameters. Presence and enum checks
happen in CheckInit; expression compilation, table reading, and the
distribution constructors report their own errors from Build.
*/
package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gopic/fields"
	"github.com/phil-mansfield/gopic/injector"
	"github.com/phil-mansfield/gopic/parse"
)

const ExampleSpeciesFile = `[Species "electrons"]

#######################
# Required Parameters #
#######################

# MomentumDistribution selects how particle momenta are drawn. It must be
# one of:
# [ constant | gaussian | gaussianflux | uniform | boltzmann | juttner |
#   radial_expansion | parser ]
# All momenta are dimensionless, u = gamma v / c, and all temperatures are
# dimensionless, theta = kT / (m c^2).
MomentumDistribution = gaussianflux

# Central momentum and thermal spread per component, used by gaussian and
# gaussianflux. The central momentum along the flux axis must be positive
# or zero.
UxM  = 0
UyM  = 0
UzM  = 0.1
UxTh = 0.01
UyTh = 0.01
UzTh = 0.01

# gaussianflux only: the axis the flux crosses, one of [ x | y | z ], and
# the direction along it, +1 or -1. Momenta on that axis are drawn from the
# flux-weighted density u*exp(-(u - uM)^2/(2 uTh^2)).
FluxNormalAxis = z
FluxDirection  = 1

[Species "ions"]

MomentumDistribution = juttner

# boltzmann and juttner take a temperature, a bulk velocity, and a drift
# direction. Exactly one temperature representation may be set:
#
# Theta           = 0.5
# ThetaExpression = 0.5 * exp(-(x^2 + y^2)/100)
# ThetaTable      = path/to/theta.txt
#
# Tables are two-column text files (coordinate, value) sorted on the first
# column, interpolated linearly, and clamped at the ends. ThetaTableAxis
# picks the coordinate the table is a function of, one of [ x | y | z | r ].
Theta = 0.5

# The bulk velocity beta = v/c follows the same pattern with Beta,
# BetaExpression, BetaTable, and BetaTableAxis.
Beta = 0.9

#######################
# Optional Parameters #
#######################

# Axis the bulk velocity points along: one of [ x | y | z ], with an
# optional leading sign, e.g. -z. Default is x.
BulkVelDir = -z

# The remaining distributions use these parameters:
#
# constant takes a fixed momentum vector:
# Ux = 0
# Uy = 0
# Uz = 0.05
#
# uniform draws each component from [min, max):
# UxMin = -0.01
# UxMax = 0.01
# UyMin = -0.01
# UyMax = 0.01
# UzMin = 0
# UzMax = 0.1
#
# radial_expansion scales momentum linearly with radius, u = UOverR * r:
# UOverR = 0.001
#
# parser evaluates one expression per component at each position. The
# expressions may use x, y, z, pi, and the usual math functions:
# UxExpression = 0.01 * sin(2*pi*z / 0.5)
# UyExpression = 0
# UzExpression = 0.1 * exp(-sqrt(x^2 + y^2 + z^2)/10)`

// SpeciesConfig holds the momentum parameters of a single [Species]
// section. Only the fields of the selected MomentumDistribution are read.
type SpeciesConfig struct {
	// Required
	MomentumDistribution string

	// constant
	Ux, Uy, Uz float64

	// gaussian and gaussianflux
	UxM, UyM, UzM    float64
	UxTh, UyTh, UzTh float64
	FluxNormalAxis   string
	FluxDirection    int

	// uniform
	UxMin, UyMin, UzMin float64
	UxMax, UyMax, UzMax float64

	// boltzmann and juttner
	Theta           float64
	ThetaExpression string
	ThetaTable      string
	ThetaTableAxis  string
	Beta            float64
	BetaExpression  string
	BetaTable       string
	BetaTableAxis   string
	BulkVelDir      string

	// radial_expansion
	UOverR float64

	// parser
	UxExpression, UyExpression, UzExpression string

	// Set by CheckInit.
	Name string
}

type SpeciesWrapper struct {
	Species map[string]*SpeciesConfig
}

var kindNames = map[string]injector.Kind{
	"constant":         injector.Constant,
	"gaussian":         injector.Gaussian,
	"gaussianflux":     injector.GaussianFlux,
	"uniform":          injector.Uniform,
	"boltzmann":        injector.Boltzmann,
	"juttner":          injector.Juttner,
	"radial_expansion": injector.RadialExpansion,
	"parser":           injector.Parser,
}

// CheckInit validates the presence and enum parameters of the section and
// stores its name. Parameters with their own constructors (expressions,
// tables, the flux central momentum) are checked later, in Build.
func (con *SpeciesConfig) CheckInit(name string) error {
	con.Name = name

	if con.MomentumDistribution == "" {
		return fmt.Errorf(
			"Need to specify a MomentumDistribution for Species '%s'.", name,
		)
	}
	kind, ok := kindNames[strings.ToLower(con.MomentumDistribution)]
	if !ok {
		return fmt.Errorf(
			"MomentumDistribution of Species '%s' must be one of "+
				"[ constant | gaussian | gaussianflux | uniform | boltzmann "+
				"| juttner | radial_expansion | parser ]. '%s' is not "+
				"recognized.", name, con.MomentumDistribution,
		)
	}

	switch kind {
	case injector.GaussianFlux:
		switch strings.ToLower(con.FluxNormalAxis) {
		case "x", "y", "z":
		case "":
			return fmt.Errorf(
				"Need to specify a FluxNormalAxis for Species '%s'.", name,
			)
		default:
			return fmt.Errorf(
				"FluxNormalAxis of Species '%s' must be one of [ x | y | z ]."+
					" '%s' is not recognized.", name, con.FluxNormalAxis,
			)
		}
		if con.FluxDirection != 1 && con.FluxDirection != -1 {
			return fmt.Errorf(
				"FluxDirection of Species '%s' must be +1 or -1, but is %d.",
				name, con.FluxDirection,
			)
		}

	case injector.Uniform:
		mins := []float64{con.UxMin, con.UyMin, con.UzMin}
		maxs := []float64{con.UxMax, con.UyMax, con.UzMax}
		comps := []string{"Ux", "Uy", "Uz"}
		for i := range mins {
			if mins[i] > maxs[i] {
				return fmt.Errorf(
					"%sMin of Species '%s' must not exceed %sMax, "+
						"but %g > %g.", comps[i], name, comps[i],
					mins[i], maxs[i],
				)
			}
		}

	case injector.Boltzmann, injector.Juttner:
		if con.ThetaExpression != "" && con.ThetaTable != "" {
			return fmt.Errorf(
				"Species '%s' sets both ThetaExpression and ThetaTable. "+
					"Only one temperature representation may be used.", name,
			)
		}
		if con.BetaExpression != "" && con.BetaTable != "" {
			return fmt.Errorf(
				"Species '%s' sets both BetaExpression and BetaTable. "+
					"Only one velocity representation may be used.", name,
			)
		}
		if con.ThetaTable != "" {
			if err := checkTableAxis(
				name, "ThetaTableAxis", con.ThetaTableAxis,
			); err != nil {
				return err
			}
		}
		if con.BetaTable != "" {
			if err := checkTableAxis(
				name, "BetaTableAxis", con.BetaTableAxis,
			); err != nil {
				return err
			}
		}
		if con.BulkVelDir == "" {
			con.BulkVelDir = "x"
		}
		if _, _, err := parseBulkVelDir(con.BulkVelDir); err != nil {
			return fmt.Errorf(
				"BulkVelDir of Species '%s' must be one of [ x | y | z ] "+
					"with an optional sign. '%s' is not recognized.",
				name, con.BulkVelDir,
			)
		}

	case injector.Parser:
		exprs := []string{
			con.UxExpression, con.UyExpression, con.UzExpression,
		}
		labels := []string{"UxExpression", "UyExpression", "UzExpression"}
		for i := range exprs {
			if exprs[i] == "" {
				return fmt.Errorf(
					"Need to specify %s for Species '%s'.", labels[i], name,
				)
			}
		}
	}

	return nil
}

func checkTableAxis(name, label, axis string) error {
	switch strings.ToLower(axis) {
	case "x", "y", "z", "r":
		return nil
	case "":
		return fmt.Errorf(
			"Need to specify %s for Species '%s'.", label, name,
		)
	}
	return fmt.Errorf(
		"%s of Species '%s' must be one of [ x | y | z | r ]. "+
			"'%s' is not recognized.", label, name, axis,
	)
}

func parseBulkVelDir(s string) (dir int, reversed bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "-"):
		reversed, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	switch s {
	case "x":
		return 0, reversed, nil
	case "y":
		return 1, reversed, nil
	case "z":
		return 2, reversed, nil
	}
	return 0, false, fmt.Errorf("Unrecognized direction '%s'.", s)
}

func tableAxis(axis string) fields.Axis {
	switch strings.ToLower(axis) {
	case "x":
		return fields.X
	case "y":
		return fields.Y
	case "z":
		return fields.Z
	}
	return fields.Radius
}

// Build creates the distribution the section describes. CheckInit must
// have passed first.
func (con *SpeciesConfig) Build() (injector.MomentumDistribution, error) {
	switch kindNames[strings.ToLower(con.MomentumDistribution)] {
	case injector.Constant:
		return injector.NewConstant(con.Ux, con.Uy, con.Uz), nil

	case injector.Gaussian:
		return injector.NewGaussian(
			con.UxM, con.UyM, con.UzM, con.UxTh, con.UyTh, con.UzTh,
		), nil

	case injector.GaussianFlux:
		axis := int(tableAxis(con.FluxNormalAxis))
		return injector.NewGaussianFlux(
			con.UxM, con.UyM, con.UzM, con.UxTh, con.UyTh, con.UzTh,
			axis, con.FluxDirection,
		)

	case injector.Uniform:
		return injector.NewUniform(
			con.UxMin, con.UyMin, con.UzMin,
			con.UxMax, con.UyMax, con.UzMax,
		), nil

	case injector.Boltzmann:
		temp, vel, err := con.buildThermal()
		if err != nil {
			return injector.MomentumDistribution{}, err
		}
		return injector.NewBoltzmann(temp, vel), nil

	case injector.Juttner:
		temp, vel, err := con.buildThermal()
		if err != nil {
			return injector.MomentumDistribution{}, err
		}
		return injector.NewJuttner(temp, vel), nil

	case injector.RadialExpansion:
		return injector.NewRadialExpansion(con.UOverR), nil

	case injector.Parser:
		ux, err := parse.Compile(con.UxExpression)
		if err != nil {
			return injector.MomentumDistribution{}, fmt.Errorf(
				"UxExpression of Species '%s': %s", con.Name, err.Error(),
			)
		}
		uy, err := parse.Compile(con.UyExpression)
		if err != nil {
			return injector.MomentumDistribution{}, fmt.Errorf(
				"UyExpression of Species '%s': %s", con.Name, err.Error(),
			)
		}
		uz, err := parse.Compile(con.UzExpression)
		if err != nil {
			return injector.MomentumDistribution{}, fmt.Errorf(
				"UzExpression of Species '%s': %s", con.Name, err.Error(),
			)
		}
		return injector.NewParser(ux, uy, uz), nil
	}

	return injector.MomentumDistribution{}, fmt.Errorf(
		"MomentumDistribution '%s' of Species '%s' is not recognized.",
		con.MomentumDistribution, con.Name,
	)
}

func (con *SpeciesConfig) buildThermal() (
	fields.Temperature, fields.Velocity, error,
) {
	var temp fields.Temperature
	switch {
	case con.ThetaExpression != "":
		ex, err := parse.Compile(con.ThetaExpression)
		if err != nil {
			return temp, fields.Velocity{}, fmt.Errorf(
				"ThetaExpression of Species '%s': %s", con.Name, err.Error(),
			)
		}
		temp = fields.ParsedTemperature(ex)
	case con.ThetaTable != "":
		prof, err := fields.ReadProfile(
			con.ThetaTable, tableAxis(con.ThetaTableAxis))
		if err != nil {
			return temp, fields.Velocity{}, err
		}
		temp = fields.TabulatedTemperature(prof)
	default:
		temp = fields.ConstantTemperature(con.Theta)
	}

	dir, reversed, err := parseBulkVelDir(con.BulkVelDir)
	if err != nil {
		return temp, fields.Velocity{}, err
	}

	var vel fields.Velocity
	switch {
	case con.BetaExpression != "":
		ex, err := parse.Compile(con.BetaExpression)
		if err != nil {
			return temp, vel, fmt.Errorf(
				"BetaExpression of Species '%s': %s", con.Name, err.Error(),
			)
		}
		vel = fields.ParsedVelocity(ex, dir)
	case con.BetaTable != "":
		prof, err := fields.ReadProfile(
			con.BetaTable, tableAxis(con.BetaTableAxis))
		if err != nil {
			return temp, vel, err
		}
		vel = fields.TabulatedVelocity(prof, dir)
	default:
		vel = fields.ConstantVelocity(con.Beta, dir)
	}

	if reversed {
		vel = vel.Reversed()
	}
	return temp, vel, nil
}

func initSpecies(wrap *SpeciesWrapper) ([]*SpeciesConfig, error) {
	names := []string{}
	for name := range wrap.Species {
		names = append(names, name)
	}
	sort.Strings(names)

	cons := []*SpeciesConfig{}
	for _, name := range names {
		con := wrap.Species[name]
		if err := con.CheckInit(name); err != nil {
			return nil, err
		}
		cons = append(cons, con)
	}

	if len(cons) == 0 {
		return nil, fmt.Errorf("No [Species] sections were given.")
	}
	return cons, nil
}

// ReadSpeciesConfig reads every [Species] section of the named file,
// sorted by section name.
func ReadSpeciesConfig(fname string) ([]*SpeciesConfig, error) {
	wrap := SpeciesWrapper{}
	if err := gcfg.ReadFileInto(&wrap, fname); err != nil {
		return nil, err
	}
	return initSpecies(&wrap)
}

// ReadSpeciesConfigString is ReadSpeciesConfig over in-memory text.
func ReadSpeciesConfigString(text string) ([]*SpeciesConfig, error) {
	wrap := SpeciesWrapper{}
	if err := gcfg.ReadStringInto(&wrap, text); err != nil {
		return nil, err
	}
	return initSpecies(&wrap)
}
