package entity

import (
	"encoding/json"
	"fmt"
)

// ChartDataset is one series of a line, bar, area or pie chart
type ChartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

// ChartData is the payload of line, bar, area and pie widgets
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// MetricData is a single value with an optional delta
type MetricData struct {
	Value      *float64 `json:"value"`
	Change     *float64 `json:"change,omitempty"`
	ChangeType string   `json:"changeType,omitempty"`
	Timeframe  string   `json:"timeframe,omitempty"`
}

// TableData is a header row plus string cells
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// StatusItem is a named status line
type StatusItem struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// StatusData lists named statuses
type StatusData struct {
	Systems []StatusItem `json:"systems"`
}

// DecodeWidgetData interprets raw according to t. It returns an error when
// the payload is missing or does not have the shape the type needs.
func DecodeWidgetData(t WidgetType, raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("widget has no data")
	}

	switch t {
	case WidgetTypeLine, WidgetTypeBar, WidgetTypeArea, WidgetTypePie:
		var d ChartData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", t, err)
		}
		if len(d.Labels) == 0 || len(d.Datasets) == 0 {
			return nil, fmt.Errorf("%s data needs labels and datasets", t)
		}
		if t == WidgetTypePie && len(d.Datasets[0].Data) != len(d.Labels) {
			return nil, fmt.Errorf("pie data needs one value per label")
		}
		return &d, nil
	case WidgetTypeMetric:
		var d MetricData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode metric data: %w", err)
		}
		if d.Value == nil {
			return nil, fmt.Errorf("metric data needs a value")
		}
		return &d, nil
	case WidgetTypeTable:
		var d TableData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode table data: %w", err)
		}
		if len(d.Headers) == 0 {
			return nil, fmt.Errorf("table data needs headers")
		}
		return &d, nil
	case WidgetTypeStatus:
		var d StatusData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode status data: %w", err)
		}
		if len(d.Systems) == 0 {
			return nil, fmt.Errorf("status data needs at least one entry")
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("unknown widget type %q", t)
	}
}
