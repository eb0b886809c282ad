package analysis

import (
	"math"

	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/walker"
)

// StrideStats summarizes the contact rhythm of one foot over a run.
type StrideStats struct {
	Foot      locomotion.Foot
	Count     int     // contact events observed
	Intervals int     // gaps between consecutive contacts
	Mean      float64 // mean stride interval in seconds
	StdDev    float64
	Min       float64
	Max       float64
}

// GaitReport pairs both feet's stride statistics with a symmetry score.
type GaitReport struct {
	Left     StrideStats
	Right    StrideStats
	Symmetry float64 // 1 means identical mean intervals, 0 means fully lopsided
}

// Strides computes per-foot stride intervals from a run's contact series.
func Strides(contacts []walker.Contact, foot locomotion.Foot) StrideStats {
	stats := StrideStats{Foot: foot}

	var times []float64
	for _, c := range contacts {
		if c.Foot == foot {
			times = append(times, c.T)
		}
	}
	stats.Count = len(times)
	if len(times) < 2 {
		return stats
	}

	intervals := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		intervals = append(intervals, times[i]-times[i-1])
	}
	stats.Intervals = len(intervals)

	stats.Min = intervals[0]
	stats.Max = intervals[0]
	sum := 0.0
	for _, iv := range intervals {
		sum += iv
		if iv < stats.Min {
			stats.Min = iv
		}
		if iv > stats.Max {
			stats.Max = iv
		}
	}
	stats.Mean = sum / float64(len(intervals))

	variance := 0.0
	for _, iv := range intervals {
		d := iv - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(intervals)))

	return stats
}

// Gait builds a full two-footed report from a contact series.
func Gait(contacts []walker.Contact) GaitReport {
	report := GaitReport{
		Left:  Strides(contacts, locomotion.FootLeft),
		Right: Strides(contacts, locomotion.FootRight),
	}
	report.Symmetry = symmetry(report.Left.Mean, report.Right.Mean)
	return report
}

// symmetry maps a pair of mean intervals onto [0,1]. Both feet silent
// scores 1; one foot silent scores 0.
func symmetry(left, right float64) float64 {
	if left == 0 && right == 0 {
		return 1
	}
	lo, hi := left, right
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return lo / hi
}
