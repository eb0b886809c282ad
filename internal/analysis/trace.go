package analysis

import "github.com/futuroptimist/strider/internal/walker"

// Frame traces pull a single scalar series out of a run for plotting.

func TraceLeftOffset(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.Left.Offset })
}

func TraceRightOffset(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.Right.Offset })
}

func TracePelvisOffset(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.PelvisOffset })
}

func TraceGroundHeight(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.GroundHeight })
}

func TraceLinearSpeed(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.LinearSpeed })
}

func TraceWalkWeight(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.Snapshot.Weights.Walk })
}

func TraceRunWeight(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.Snapshot.Weights.Run })
}

func TraceIdleWeight(frames []walker.Frame) []float64 {
	return trace(frames, func(f walker.Frame) float64 { return f.Snapshot.Weights.Idle })
}

func trace(frames []walker.Frame, pick func(walker.Frame) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}

// TraceNames lists the series available to the plot command.
func TraceNames() []string {
	return []string{
		"left_offset", "right_offset", "pelvis_offset",
		"ground_height", "linear_speed",
		"idle_weight", "walk_weight", "run_weight",
	}
}

// TraceByName resolves a series name from TraceNames. Unknown names
// return nil.
func TraceByName(name string, frames []walker.Frame) []float64 {
	switch name {
	case "left_offset":
		return TraceLeftOffset(frames)
	case "right_offset":
		return TraceRightOffset(frames)
	case "pelvis_offset":
		return TracePelvisOffset(frames)
	case "ground_height":
		return TraceGroundHeight(frames)
	case "linear_speed":
		return TraceLinearSpeed(frames)
	case "idle_weight":
		return TraceIdleWeight(frames)
	case "walk_weight":
		return TraceWalkWeight(frames)
	case "run_weight":
		return TraceRunWeight(frames)
	}
	return nil
}
