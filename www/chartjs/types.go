package chartjs

// Chart is a complete Chart.js configuration. The field names follow
// the Chart.js option tree so the struct can be marshalled and passed
// to the constructor unchanged.
type Chart struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset holds one series. Data uses pointers so a missing hour
// marshals as null and Chart.js leaves a gap instead of drawing zero.
type ChartDataset struct {
	Data            []*float64 `json:"data,omitempty"`
	BorderWidth     int        `json:"borderWidth"`
	Tension         float64    `json:"tension"`
	Fill            bool       `json:"fill"`
	BorderColor     string     `json:"borderColor"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	YAxisID         string     `json:"yAxisID,omitempty"`
}

type ChartOptions struct {
	Responsive bool                   `json:"responsive"`
	Plugins    ChartPlugins           `json:"plugins"`
	Scales     map[string]*ChartScale `json:"scales"`
}

type ChartPlugins struct {
	Legend ChartLegend `json:"legend"`
	Title  ChartTitle  `json:"title"`
}

type ChartLegend struct {
	Display bool `json:"display"`
}

// ChartTitle doubles as the chart heading and a scale label.
type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type ChartScale struct {
	Type     string     `json:"type"`
	Display  bool       `json:"display"`
	Position string     `json:"position"`
	Min      *float64   `json:"min,omitempty"`
	Max      *float64   `json:"max,omitempty"`
	Title    ChartTitle `json:"title"`
}
