package domain

// Summary holds the mean and range of one series.
type Summary struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TempoStats summarizes a TEMPO retrieval.
type TempoStats struct {
	Count      int     `json:"count"`
	NO2        Summary `json:"no2"`
	O3         Summary `json:"o3"`
	AOD        Summary `json:"aod"`
	Confidence Summary `json:"confidence"`
}

// Summarize computes per-parameter statistics. An empty input yields zero values.
func Summarize(samples []TempoSample) TempoStats {
	if len(samples) == 0 {
		return TempoStats{}
	}
	return TempoStats{
		Count:      len(samples),
		NO2:        summarize(samples, sampleOf(ParameterNO2)),
		O3:         summarize(samples, sampleOf(ParameterO3)),
		AOD:        summarize(samples, sampleOf(ParameterAOD)),
		Confidence: summarize(samples, func(s TempoSample) float64 { return s.Confidence }),
	}
}

func sampleOf(p Parameter) func(TempoSample) float64 {
	return func(s TempoSample) float64 {
		v, _ := p.Sample(s)
		return v
	}
}

// SummarizeMeasurements computes statistics over measurement values.
func SummarizeMeasurements(ms []GeoMeasurement) Summary {
	if len(ms) == 0 {
		return Summary{}
	}
	return summarize(ms, func(m GeoMeasurement) float64 { return m.Value })
}

func summarize[T any](items []T, get func(T) float64) Summary {
	first := get(items[0])
	s := Summary{Min: first, Max: first}
	var sum float64
	for _, it := range items {
		v := get(it)
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = sum / float64(len(items))
	return s
}
