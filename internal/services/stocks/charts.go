package stocks

import (
	domain "cryptopulse/internal/domain/stocks"
)

// ChartData is the Chart.js payload shape
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one Chart.js dataset. Color fields are either a single
// string or a per-value list depending on the chart type.
type Dataset struct {
	Label           string      `json:"label,omitempty"`
	Data            []*float64  `json:"data"`
	BorderColor     interface{} `json:"borderColor,omitempty"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
	BorderWidth     int         `json:"borderWidth,omitempty"`
	PointRadius     *int        `json:"pointRadius,omitempty"`
	Fill            *bool       `json:"fill,omitempty"`
}

const (
	colorTeal      = "rgba(75, 192, 192, 1)"
	colorTealFill  = "rgba(75, 192, 192, 0.2)"
	colorTealSoft  = "rgba(75, 192, 192, 0.7)"
	colorRed       = "rgba(255, 99, 132, 1)"
	colorRedClear  = "rgba(255, 99, 132, 0)"
	colorRedSoft   = "rgba(255, 99, 132, 0.7)"
	colorBlue      = "rgba(54, 162, 235, 1)"
	colorBlueClear = "rgba(54, 162, 235, 0)"
	colorPurple    = "rgba(153, 102, 255, 1)"
	colorPurpleMid = "rgba(153, 102, 255, 0.5)"
	colorGray      = "rgba(201, 203, 207, 1)"
	colorGraySoft  = "rgba(201, 203, 207, 0.7)"
)

func emptyChart() ChartData {
	return ChartData{Labels: []string{}, Datasets: []Dataset{}}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
func fptr(v float64) *float64 {
	return &v
}

// PriceChart builds a line chart of closing prices with the rolling
// means overlaid where available. Mean series carry nulls before the
// window fills so all datasets share the label axis.
func PriceChart(bars []domain.PriceBar) ChartData {
	if len(bars) == 0 {
		return emptyChart()
	}

	labels := make([]string, len(bars))
	closes := make([]*float64, len(bars))
	ma7 := make([]*float64, len(bars))
	ma30 := make([]*float64, len(bars))
	hasMA7, hasMA30 := false, false

	for i, bar := range bars {
		labels[i] = bar.Date.Format("2006-01-02")
		closes[i] = fptr(bar.Close)
		if bar.MA7 != nil {
			ma7[i] = bar.MA7
			hasMA7 = true
		}
		if bar.MA30 != nil {
			ma30[i] = bar.MA30
			hasMA30 = true
		}
	}

	chart := ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Closing Price",
			Data:            closes,
			BorderColor:     colorTeal,
			BackgroundColor: colorTealFill,
			BorderWidth:     2,
			PointRadius:     intPtr(1),
			Fill:            boolPtr(false),
		}},
	}

	if hasMA7 {
		chart.Datasets = append(chart.Datasets, Dataset{
			Label:           "7-Day MA",
			Data:            ma7,
			BorderColor:     colorRed,
			BackgroundColor: colorRedClear,
			BorderWidth:     1,
			PointRadius:     intPtr(0),
			Fill:            boolPtr(false),
		})
	}
	if hasMA30 {
		chart.Datasets = append(chart.Datasets, Dataset{
			Label:           "30-Day MA",
			Data:            ma30,
			BorderColor:     colorBlue,
			BackgroundColor: colorBlueClear,
			BorderWidth:     1,
			PointRadius:     intPtr(0),
			Fill:            boolPtr(false),
		})
	}
	return chart
}

// VolumeChart builds a bar chart of trade volumes
func VolumeChart(bars []domain.PriceBar) ChartData {
	if len(bars) == 0 {
		return emptyChart()
	}

	labels := make([]string, len(bars))
	volumes := make([]*float64, len(bars))
	for i, bar := range bars {
		labels[i] = bar.Date.Format("2006-01-02")
		volumes[i] = fptr(bar.Volume)
	}

	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Volume",
			Data:            volumes,
			BackgroundColor: colorPurpleMid,
			BorderColor:     colorPurple,
			BorderWidth:     1,
		}},
	}
}

// SentimentChart builds a doughnut chart of the sentiment distribution
// scaled to percentages
func SentimentChart(sentiment domain.HeadlineSentiment) ChartData {
	if sentiment.SentimentDistribution == nil {
		return emptyChart()
	}

	dist := sentiment.SentimentDistribution
	return ChartData{
		Labels: []string{"Positive", "Neutral", "Negative"},
		Datasets: []Dataset{{
			Data: []*float64{
				fptr(dist["positive"] * 100),
				fptr(dist["neutral"] * 100),
				fptr(dist["negative"] * 100),
			},
			BackgroundColor: []string{colorTealSoft, colorGraySoft, colorRedSoft},
			BorderColor:     []string{colorTeal, colorGray, colorRed},
			BorderWidth:     1,
		}},
	}
}

// MoversChart builds a bar chart of gainers and losers, colored green
// for positive change and red for negative
func MoversChart(gainers, losers []domain.Mover) ChartData {
	if len(gainers) == 0 && len(losers) == 0 {
		return emptyChart()
	}

	all := append(append([]domain.Mover{}, gainers...), losers...)
	labels := make([]string, len(all))
	values := make([]*float64, len(all))
	background := make([]string, len(all))
	border := make([]string, len(all))

	for i, m := range all {
		labels[i] = m.Company
		values[i] = fptr(m.ChangePercent)
		if m.ChangePercent >= 0 {
			background[i] = colorTealSoft
			border[i] = colorTeal
		} else {
			background[i] = colorRedSoft
			border[i] = colorRed
		}
	}

	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Price Change (%)",
			Data:            values,
			BackgroundColor: background,
			BorderColor:     border,
			BorderWidth:     1,
		}},
	}
}
