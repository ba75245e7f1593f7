package arena

// Utilization returns the ratio of bytes in use to total capacity, in
// [0.0, 1.0]. Returns 0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.offset) / float64(a.capacity)
}

// WasteRatio returns the ratio of alignment padding to total capacity.
func (a *Arena) WasteRatio() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.waste) / float64(a.capacity)
}

// Metrics returns a snapshot of this arena's statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		Offset:      a.offset,
		Capacity:    a.capacity,
		Waste:       a.waste,
		Utilization: a.Utilization(),
		WasteRatio:  a.WasteRatio(),
	}
}

// ArenaMetrics is a point-in-time snapshot of an arena's bump-pointer
// state, independent of the Monitor's per-allocation records.
type ArenaMetrics struct {
	Offset      int     // bytes currently in use, including padding
	Capacity    int     // fixed total capacity in bytes
	Waste       int     // cumulative alignment padding since last reset
	Utilization float64 // Offset / Capacity
	WasteRatio  float64 // Waste / Capacity
}
