package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verdantlabs/sunfield/internal/exposure"
	"github.com/verdantlabs/sunfield/internal/log"
	"github.com/verdantlabs/sunfield/pkg/config"
	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/slope"
)

// heat map shades from full shade to full sun
var shades = []rune{' ', '.', ':', '-', '=', '+', '*', '#', '%', '@'}

func main() {
	cfgFile := flag.String("config", "sunfield.yaml", "Path to YAML configuration file")
	startStr := flag.String("start", "", "Start date (YYYY-MM-DD, default: today)")
	endStr := flag.String("end", "", "End date (YYYY-MM-DD, default: start + 30 days)")
	extent := flag.Float64("extent", 50, "Half-width of the mapped square around the site, in meters")
	resolution := flag.Float64("resolution", 0, "Cell size in meters (default: from config, else 5)")
	serial := flag.Bool("serial", false, "Compute serially instead of in parallel")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug, ""); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)
	cfgData, err := provider.LoadConfig()
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	obstacles, err := cfgData.ObstacleList()
	if err != nil {
		log.Errorf("Invalid obstacle configuration: %v", err)
		os.Exit(1)
	}

	start, end, err := dateRange(*startStr, *endStr)
	if err != nil {
		log.Errorf("Invalid date range: %v", err)
		os.Exit(1)
	}

	cfg := exposure.DefaultConfig()
	if cfgData.Grid.ResolutionM > 0 {
		cfg.ResolutionM = cfgData.Grid.ResolutionM
	}
	if cfgData.Grid.SampleDays > 0 {
		cfg.SampleDays = cfgData.Grid.SampleDays
	}
	if cfgData.Grid.ChunkSize > 0 {
		cfg.ChunkSize = cfgData.Grid.ChunkSize
	}
	if *resolution > 0 {
		cfg.ResolutionM = *resolution
	}

	site := cfgData.Site.Coordinates()
	dLat := *extent / geo.MetersPerDegreeLat
	dLon := *extent / geo.MetersPerDegreeLon(site.Latitude)

	var siteSlope *slope.Slope
	if s := cfgData.Site.Slope(); s.AngleDeg > 0 {
		siteSlope = &s
	}

	computerType := exposure.ComputerTypeParallel
	if *serial {
		computerType = exposure.ComputerTypeSerial
	}

	cal := exposure.NewCalculator(log.GetSugaredLogger(), exposure.Request{
		Bounds: exposure.Bounds{
			MinLat: site.Latitude - dLat,
			MinLon: site.Longitude - dLon,
			MaxLat: site.Latitude + dLat,
			MaxLon: site.Longitude + dLon,
		},
		Obstacles: obstacles,
		Slope:     siteSlope,
		Start:     start,
		End:       end,
		Config:    cfg,
		Progress: func(fraction float64) {
			fmt.Fprintf(os.Stderr, "\rcomputing... %3.0f%%", fraction*100)
		},
	}, computerType)

	grid, err := cal.Compute(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr)
		log.Errorf("Grid computation failed: %v", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr)

	printGrid(grid)

	stats := grid.Stats()
	fmt.Printf("\nSun exposure %s to %s (%d×%d cells, %.1f m resolution)\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"), grid.Width, grid.Height, grid.ResolutionM)
	fmt.Printf("  Min:     %5.2f h/day\n", stats.Min)
	fmt.Printf("  Max:     %5.2f h/day\n", stats.Max)
	fmt.Printf("  Mean:    %5.2f h/day\n", stats.Mean)
	fmt.Printf("  StdDev:  %5.2f h/day\n", stats.StdDev)
	fmt.Printf("  Elapsed: %v\n", grid.ComputeTime.Round(time.Millisecond))
}

func dateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start := time.Now().UTC()
	if startStr != "" {
		var err error
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	end := start.AddDate(0, 0, 30)
	if endStr != "" {
		var err error
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end %s precedes start %s", endStr, startStr)
	}
	return start, end, nil
}

// printGrid renders the grid as an ASCII heat map, north at the top.
func printGrid(g *exposure.Grid) {
	stats := g.Stats()
	span := stats.Max - stats.Min

	for row := g.Height - 1; row >= 0; row-- {
		for col := 0; col < g.Width; col++ {
			v, _ := g.At(row, col)
			idx := 0
			if span > 0 {
				idx = int((v - stats.Min) / span * float64(len(shades)-1))
			} else if v > 0 {
				idx = len(shades) - 1
			}
			fmt.Printf("%c", shades[idx])
		}
		fmt.Println()
	}
}
