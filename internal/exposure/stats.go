package exposure

import "gonum.org/v1/gonum/stat"

// Stats summarizes the value distribution of a grid.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// Stats returns min/max/mean/standard deviation over all cells.
func (g *Grid) Stats() Stats {
	if len(g.Values) == 0 {
		return Stats{}
	}

	min, max := g.Values[0], g.Values[0]
	for _, v := range g.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	s := Stats{Min: min, Max: max, Mean: stat.Mean(g.Values, nil)}
	if len(g.Values) > 1 {
		s.StdDev = stat.StdDev(g.Values, nil)
	}
	return s
}
