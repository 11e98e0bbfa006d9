package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

func main() {
	var timeStr string
	var lat, lon float64
	flag.StringVar(&timeStr, "time", "", "UTC time to compute the sun for (RFC3339 format, e.g., 2024-06-20T12:00:00Z)")
	flag.Float64Var(&lat, "lat", 0, "Latitude in decimal degrees (positive north)")
	flag.Float64Var(&lon, "lon", 0, "Longitude in decimal degrees (positive east)")
	flag.Parse()

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		fmt.Fprintf(os.Stderr, "Error: -lat must be in [-90, 90] and -lon in [-180, 180]\n")
		os.Exit(1)
	}

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	coords := geo.Coordinates{Latitude: lat, Longitude: lon}
	pos := solarpos.Position(coords, t)
	times := solarpos.Times(coords, t)

	fmt.Printf("Sun Position for %s at (%.4f, %.4f)\n", t.Format(time.RFC3339), lat, lon)
	fmt.Printf("  Altitude:   %.2f°\n", pos.Altitude)
	fmt.Printf("  Azimuth:    %.2f°\n", pos.Azimuth)
	if pos.Altitude > 0 {
		fmt.Printf("  Daylight:   yes\n")
	} else {
		fmt.Printf("  Daylight:   no\n")
	}

	fmt.Printf("Day Summary (%s)\n", t.Format("2006-01-02"))
	switch times.Condition {
	case solarpos.ConditionMidnightSun:
		fmt.Printf("  Midnight sun: the sun never sets\n")
	case solarpos.ConditionPolarNight:
		fmt.Printf("  Polar night: the sun never rises\n")
	default:
		fmt.Printf("  Sunrise:    %s\n", times.Sunrise.Format(time.RFC3339))
		fmt.Printf("  Sunset:     %s\n", times.Sunset.Format(time.RFC3339))
	}
	fmt.Printf("  Solar Noon: %s\n", times.SolarNoon.Format(time.RFC3339))
	fmt.Printf("  Day Length: %.2f hours\n", times.DayLength)
}
