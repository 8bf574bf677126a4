package script

import (
	"math"
	"time"
)

const defaultTickCount = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Extent returns the min and max of values. ok is false for an empty slice.
func Extent(values []float64) (domain [2]float64, ok bool) {
	if len(values) == 0 {
		return domain, false
	}
	domain = [2]float64{values[0], values[0]}
	for _, v := range values[1:] {
		if v < domain[0] {
			domain[0] = v
		}
		if v > domain[1] {
			domain[1] = v
		}
	}
	return domain, true
}

// TimeExtent returns the earliest and latest time.
func TimeExtent(values []time.Time) (domain [2]time.Time, ok bool) {
	if len(values) == 0 {
		return domain, false
	}
	domain = [2]time.Time{values[0], values[0]}
	for _, v := range values[1:] {
		if v.Before(domain[0]) {
			domain[0] = v
		}
		if v.After(domain[1]) {
			domain[1] = v
		}
	}
	return domain, true
}

// tickIncrement is the tick step for count ticks over [start, stop]. A
// negative result -k stands for a step of 1/k.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Nice extends a linear domain outwards to round tick values.
func Nice(domain [2]float64) [2]float64 {
	return NiceCount(domain, defaultTickCount)
}

func NiceCount(domain [2]float64, count int) [2]float64 {
	start, stop := domain[0], domain[1]
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	if start == stop || count <= 0 || !isFinite(start) || !isFinite(stop) {
		return domain
	}

	var prestep float64
loop:
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			break loop
		}
		prestep = step
	}

	if reversed {
		return [2]float64{stop, start}
	}
	return [2]float64{start, stop}
}

// ZeroMax is the niced [0, max] domain used by the bar charts.
func ZeroMax(values []float64) [2]float64 {
	top := 0.0
	for _, v := range values {
		if v > top {
			top = v
		}
	}
	return Nice([2]float64{0, top})
}
