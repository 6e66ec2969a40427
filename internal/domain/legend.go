package domain

// LegendRow is one depth bucket in the legend.
type LegendRow struct {
	Low   float64 `json:"low"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Legend describes the depth legend control.
type Legend struct {
	Position string      `json:"position"`
	Title    string      `json:"title"`
	Rows     []LegendRow `json:"rows"`
}

// DepthBuckets returns the legend thresholds in display order. They are
// fixed and do not track the range of the fetched data.
func DepthBuckets() []float64 {
	return []float64{0, 10, 30, 50, 70, 90}
}

// BuildLegend returns one row per depth bucket. Swatches use the color one
// kilometer above each threshold; interior rows are labeled "low–high" and
// the last row "low+".
func BuildLegend() Legend {
	buckets := DepthBuckets()
	rows := make([]LegendRow, len(buckets))
	for i, low := range buckets {
		label := formatNumber(low) + "+"
		if i+1 < len(buckets) {
			label = formatNumber(low) + "–" + formatNumber(buckets[i+1])
		}
		rows[i] = LegendRow{
			Low:   low,
			Color: ColorForDepth(low + 1),
			Label: label,
		}
	}
	return Legend{
		Position: "bottomright",
		Title:    "Depth (in kms)",
		Rows:     rows,
	}
}
