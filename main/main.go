package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/gopic/config"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/injector"
	"github.com/phil-mansfield/gopic/rand"
)

var generatorNames = map[string]rand.GeneratorType{
	"xorshift":   rand.Xorshift,
	"golang":     rand.Golang,
	"tausworthe": rand.Tausworthe,
	"pcg":        rand.PCG,
}

type momentumRow struct {
	X  float64 `csv:"x"`
	Y  float64 `csv:"y"`
	Z  float64 `csv:"z"`
	Ux float64 `csv:"ux"`
	Uy float64 `csv:"uy"`
	Uz float64 `csv:"uz"`
}

func main() {
	var (
		sample, hist  string
		exampleConfig string

		species, axis, generator string
		out                      string
		n, workers, bins         int
		seed                     int64
		x, y, z                  float64
	)
	vars := map[string]*string{
		"Sample":        &sample,
		"Hist":          &hist,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&sample, "Sample", "",
		"Species configuration file for [Sample] mode: draw momenta for one "+
			"species and print summary statistics.",
	)
	flag.StringVar(
		&hist, "Hist", "",
		"Species configuration file for [Hist] mode: plot a histogram of "+
			"one momentum component.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Species'.",
	)

	flag.StringVar(
		&species, "Species", "",
		"Name of the species section to use. Defaults to the only section "+
			"in the file.",
	)
	flag.IntVar(&n, "N", 100000, "Number of momenta to draw.")
	flag.Int64Var(
		&seed, "Seed", 0,
		"Seed of the particle seed sequence. 0 seeds from the clock.",
	)
	flag.Float64Var(&x, "X", 0, "x coordinate momenta are drawn at.")
	flag.Float64Var(&y, "Y", 0, "y coordinate momenta are drawn at.")
	flag.Float64Var(&z, "Z", 0, "z coordinate momenta are drawn at.")
	flag.StringVar(
		&out, "Out", "",
		"[Sample] mode: csv file the momenta are written to. [Hist] mode: "+
			"png file the histogram is written to.",
	)
	flag.IntVar(
		&workers, "Workers", 0,
		"Number of goroutines used to draw momenta. 0 uses every core.",
	)
	flag.IntVar(&bins, "Bins", 50, "Number of histogram bins in [Hist] mode.")
	flag.StringVar(
		&axis, "Axis", "x",
		"Momentum component histogrammed in [Hist] mode: one of [ x | y | z ].",
	)
	flag.StringVar(
		&generator, "Generator", "tausworthe",
		"Random generator type: one of [ xorshift | golang | tausworthe "+
			"| pcg ].",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	gt, ok := generatorNames[strings.ToLower(generator)]
	if !ok {
		log.Fatalf("Unrecognized 'Generator' value '%s'.", generator)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch modeName {
	case "Sample":
		con := readSpecies(sample, species)
		d, err := con.Build()
		if err != nil {
			log.Fatal(err.Error())
		}

		us := draw(&d, x, y, z, n, gt, seed, workers)
		printSummary(con.Name, &d, x, y, z, us)

		if out != "" {
			if err := writeCSV(out, x, y, z, us); err != nil {
				log.Fatal(err.Error())
			}
			fmt.Printf("%d momenta written to %s\n", len(us), out)
		}

	case "Hist":
		if out == "" {
			log.Fatal("[Hist] mode needs an 'Out' file for its plot.")
		}
		k, err := axisIndex(axis)
		if err != nil {
			log.Fatal(err.Error())
		}

		con := readSpecies(hist, species)
		d, err := con.Build()
		if err != nil {
			log.Fatal(err.Error())
		}

		us := draw(&d, x, y, z, n, gt, seed, workers)
		plotHist(out, con.Name, axis, &d, x, y, z, k, bins, us)
		plt.Execute()
		fmt.Printf("Histogram written to %s\n", out)

	case "ExampleConfig":
		switch exampleConfig {
		case "Species":
			fmt.Println(config.ExampleSpeciesFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Species'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gopic only accepts "+
				"one mode flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func readSpecies(fname, name string) *config.SpeciesConfig {
	cons, err := config.ReadSpeciesConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}

	if name == "" {
		if len(cons) > 1 {
			log.Fatalf(
				"%s contains %d species. Select one with the 'Species' "+
					"flag: %s.", fname, len(cons),
				strings.Join(speciesNames(cons), ", "),
			)
		}
		return cons[0]
	}

	for _, con := range cons {
		if con.Name == name {
			return con
		}
	}
	log.Fatalf(
		"%s has no Species '%s'. The species in it are: %s.",
		fname, name, strings.Join(speciesNames(cons), ", "),
	)
	panic("Impossible")
}

func speciesNames(cons []*config.SpeciesConfig) []string {
	names := make([]string, len(cons))
	for i := range cons {
		names[i] = "'" + cons[i].Name + "'"
	}
	return names
}

func axisIndex(axis string) (int, error) {
	switch strings.ToLower(axis) {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("'Axis' value '%s' is not one of [ x | y | z ].",
		axis)
}

func draw(
	d *injector.MomentumDistribution,
	x, y, z float64, n int, gt rand.GeneratorType, seed int64, workers int,
) []geom.Vec {
	if n <= 0 {
		log.Fatalf("'N' must be positive, but is %d.", n)
	}

	xs := make([]geom.Vec, n)
	for i := range xs {
		xs[i] = geom.Vec{x, y, z}
	}
	out := make([]geom.Vec, n)

	seq := rand.NewSequence(gt, uint64(seed))
	injector.Fill(d, xs, out, seq, workers)
	return out
}

func printSummary(
	name string, d *injector.MomentumDistribution,
	x, y, z float64, us []geom.Vec,
) {
	comp := make([]float64, len(us))
	nominal := d.Mean(x, y, z)

	fmt.Printf("Species '%s': %s momenta at (%g, %g, %g)\n",
		name, d.Kind(), x, y, z)
	fmt.Printf("%10s %12s %12s %12s\n", "", "ux", "uy", "uz")

	means, spreads := [3]float64{}, [3]float64{}
	for k := 0; k < 3; k++ {
		for i := range us {
			comp[i] = us[i][k]
		}
		means[k] = stat.Mean(comp, nil)
		spreads[k] = stat.StdDev(comp, nil)
	}

	fmt.Printf("%10s %12.5g %12.5g %12.5g\n",
		"mean", means[0], means[1], means[2])
	fmt.Printf("%10s %12.5g %12.5g %12.5g\n",
		"nominal", nominal[0], nominal[1], nominal[2])
	fmt.Printf("%10s %12.5g %12.5g %12.5g\n",
		"spread", spreads[0], spreads[1], spreads[2])
}

func writeCSV(fname string, x, y, z float64, us []geom.Vec) error {
	rows := make([]momentumRow, len(us))
	for i := range us {
		rows[i] = momentumRow{x, y, z, us[i][0], us[i][1], us[i][2]}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

func plotHist(
	fname, name, axis string, d *injector.MomentumDistribution,
	x, y, z float64, k, bins int, us []geom.Vec,
) {
	if bins <= 0 {
		log.Fatalf("'Bins' must be positive, but is %d.", bins)
	}

	comp := make([]float64, len(us))
	for i := range us {
		comp[i] = us[i][k]
	}
	sort.Float64s(comp)

	low, high := comp[0], comp[len(comp)-1]
	if low == high {
		// A delta function. Give the bins somewhere to live.
		low, high = low-0.5, high+0.5
	}
	// Nudge the top edge so the largest sample falls inside the last bin.
	high += (high - low) / float64(bins) * 1e-3

	dividers := floats.Span(make([]float64, bins+1), low, high)
	counts := stat.Histogram(nil, dividers, comp, nil)
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = (dividers[i] + dividers[i+1]) / 2
	}

	maxCount := floats.Max(counts)
	nominal := d.Mean(x, y, z)[k]

	plt.Figure()
	plt.Plot(centers, counts, "k", plt.LW(2))
	plt.Plot([]float64{nominal, nominal}, []float64{0, 1.05 * maxCount},
		"r", plt.LW(2))
	plt.Title(fmt.Sprintf("Species '%s': %s", name, d.Kind()))
	plt.XLabel(fmt.Sprintf(`$u_%s = \gamma v_%s / c$`, axis, axis),
		plt.FontSize(16))
	plt.YLabel("Count", plt.FontSize(16))
	plt.YLim(0, math.Ceil(1.05*maxCount))
	plt.SaveFig(fname)
}
