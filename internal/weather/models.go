package weather

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sentinel values used where upstream data is missing or unparsable.
const (
	// DefaultCondition fills in when upstream provides no condition text.
	DefaultCondition = "Fair"

	// DateUnknown marks a bucket whose raw date string did not parse.
	DateUnknown = "unknown"

	// UpdatedJustNow marks a current-conditions snapshot with a missing
	// or unparsable update timestamp.
	UpdatedJustNow = "just now"
)

// MaxForecastDays bounds how many distinct dates the multi-day forecast keeps.
const MaxForecastDays = 4

// rawPayload mirrors the upstream feed shape. Every field is optional and
// untrusted; normalization performs an explicit coercion pass before any
// value reaches a DailySummary.
type rawPayload struct {
	Items []rawItem `json:"items"`
}

type rawItem struct {
	UpdateTimestamp string        `json:"update_timestamp"`
	Forecasts       []rawForecast `json:"forecasts"`
}

type rawForecast struct {
	Date             string    `json:"date"`
	Forecast         string    `json:"forecast"`
	Temperature      *rawRange `json:"temperature"`
	RelativeHumidity *rawRange `json:"relative_humidity"`
	Wind             *rawRange `json:"wind"`
}

// rawRange leaves low/high undecoded; upstream sends numbers, numeric
// strings, nulls, or garbage interchangeably.
type rawRange struct {
	Low  json.RawMessage `json:"low"`
	High json.RawMessage `json:"high"`
}

// numeric coerces a raw JSON value into a float64. It accepts JSON numbers
// and numeric strings; anything else (missing, null, objects, word strings)
// is reported invalid and skipped by the caller.
func numeric(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// Range holds an aggregated low/high pair. A nil bound means no valid
// sample existed for that side; it is never NaN.
type Range struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

// DailySummary is the normalized per-date aggregate produced from the
// multi-day feed. It is what the page renders for each forecast day.
type DailySummary struct {
	Date             string   `json:"date"`
	PrimaryCondition string   `json:"primaryCondition"`
	Conditions       []string `json:"conditions"`
	Temperature      Range    `json:"temperature"`
	Humidity         Range    `json:"humidity"`
	Wind             Range    `json:"wind"`
	HasRain          bool     `json:"hasRain"`
	Icon             string   `json:"icon"`
}

// CurrentConditions is the normalized near-term snapshot.
type CurrentConditions struct {
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	UpdatedAt string `json:"updatedAt"`
}
