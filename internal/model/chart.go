package model

// SectorAggregate is one per-sector summary row
type SectorAggregate struct {
	Sector       string  `json:"sector"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Price        float64 `json:"price"`
	PricePerSqft float64 `json:"price_per_sqft"`
	Area         float64 `json:"built_up_area"`
	Count        int     `json:"count"`
}

// ChartArtifact is one renderable chart, or a placeholder explaining why
// the chart could not be drawn. Exactly one of Figure and Placeholder is set.
type ChartArtifact struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Figure      any    `json:"figure,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	HTML        string `json:"html"`
}

// IsPlaceholder reports whether the chart carries no figure
func (a ChartArtifact) IsPlaceholder() bool {
	return a.Figure == nil
}

// AnalyticsResponse is returned by the analytics endpoint
type AnalyticsResponse struct {
	Figures        map[string]ChartArtifact `json:"figures"`
	Sectors        []string                 `json:"sectors"`
	SelectedSector string                   `json:"selected_sector"`
	WordCloud      string                   `json:"wordcloud_png_base64"`
	Rows           int                      `json:"rows"`
	SectorRows     int                      `json:"sector_rows"`
}
