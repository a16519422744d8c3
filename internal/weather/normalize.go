package weather

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/coastkeepers/shorecast/internal/common"
)

// rainTokens are the substrings (lowercase) that flag a condition as rainy.
var rainTokens = []string{"rain"}

// dayBucket accumulates the raw samples seen for one raw date string.
type dayBucket struct {
	rawDate     string
	conditions  []string
	seen        map[string]bool
	temperature rangeAcc
	humidity    rangeAcc
	wind        rangeAcc
}

// rangeAcc sums valid low/high samples independently so each side averages
// over only the samples that actually parsed.
type rangeAcc struct {
	lowSum    float64
	lowCount  int
	highSum   float64
	highCount int
}

func (a *rangeAcc) add(r *rawRange) {
	if r == nil {
		return
	}
	if v, ok := numeric(r.Low); ok {
		a.lowSum += v
		a.lowCount++
	}
	if v, ok := numeric(r.High); ok {
		a.highSum += v
		a.highCount++
	}
}

func (a *rangeAcc) mean() Range {
	var out Range
	if a.lowCount > 0 {
		v := a.lowSum / float64(a.lowCount)
		out.Low = &v
	}
	if a.highCount > 0 {
		v := a.highSum / float64(a.highCount)
		out.High = &v
	}
	return out
}

// NormalizeMultiDay reshapes a raw multi-day payload into day-bucketed
// summaries, one per distinct raw date, capped at MaxForecastDays in
// first-seen order. A payload with no usable items yields an empty slice,
// never an error; entries without a date are dropped.
func NormalizeMultiDay(raw []byte) []DailySummary {
	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	buckets := make(map[string]*dayBucket)
	var order []string

	for _, item := range payload.Items {
		for _, fc := range item.Forecasts {
			if fc.Date == "" {
				continue
			}

			bucket, ok := buckets[fc.Date]
			if !ok {
				if len(order) >= MaxForecastDays {
					continue
				}
				bucket = &dayBucket{
					rawDate: fc.Date,
					seen:    make(map[string]bool),
				}
				buckets[fc.Date] = bucket
				order = append(order, fc.Date)
			}

			if fc.Forecast != "" && !bucket.seen[fc.Forecast] {
				bucket.seen[fc.Forecast] = true
				bucket.conditions = append(bucket.conditions, fc.Forecast)
			}
			bucket.temperature.add(fc.Temperature)
			bucket.humidity.add(fc.RelativeHumidity)
			bucket.wind.add(fc.Wind)
		}
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, date := range order {
		summaries = append(summaries, buckets[date].summary())
	}
	return summaries
}

func (b *dayBucket) summary() DailySummary {
	primary := DefaultCondition
	if len(b.conditions) > 0 {
		primary = b.conditions[0]
	}

	hasRain := false
	for _, cond := range b.conditions {
		if common.HasAny(strings.ToLower(cond), rainTokens...) {
			hasRain = true
			break
		}
	}

	return DailySummary{
		Date:             displayDate(b.rawDate),
		PrimaryCondition: primary,
		Conditions:       b.conditions,
		Temperature:      b.temperature.mean(),
		Humidity:         b.humidity.mean(),
		Wind:             b.wind.mean(),
		HasRain:          hasRain,
		Icon:             IconFor(primary),
	}
}

// displayDate reformats an ISO date for display, or returns the unknown
// sentinel when the raw string does not parse.
func displayDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return DateUnknown
	}
	return t.Format("Mon, 2 Jan")
}

// NormalizeCurrent reduces a raw near-term payload to a single snapshot
// taken from the first item's first forecast entry. Absent or empty
// upstream arrays yield nil, which callers treat as "no data".
func NormalizeCurrent(raw []byte) *CurrentConditions {
	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if len(payload.Items) == 0 || len(payload.Items[0].Forecasts) == 0 {
		return nil
	}

	item := payload.Items[0]
	condition := item.Forecasts[0].Forecast
	if condition == "" {
		condition = DefaultCondition
	}

	updated := UpdatedJustNow
	if ts, err := time.Parse(time.RFC3339, item.UpdateTimestamp); err == nil {
		updated = ts.Format("3:04 PM")
	}

	return &CurrentConditions{
		Condition: condition,
		Icon:      IconFor(condition),
		UpdatedAt: updated,
	}
}

// iconRules map condition text to a display icon. Rules are evaluated in
// priority order; the first substring match wins.
var iconRules = []struct {
	subs []string
	icon string
}{
	{[]string{"thundery"}, "stormy"},
	{[]string{"rain", "showers"}, "rainy"},
	{[]string{"cloudy", "overcast"}, "cloudy"},
	{[]string{"clear", "sunny", "fair"}, "clear"},
	{[]string{"partly"}, "partly-cloudy"},
	{[]string{"fog"}, "foggy"},
}

// IconDefault is returned when no icon rule matches.
const IconDefault = "weather"

// IconFor picks the display icon for a condition description.
func IconFor(condition string) string {
	lower := strings.ToLower(condition)
	for _, rule := range iconRules {
		if common.HasAny(lower, rule.subs...) {
			return rule.icon
		}
	}
	return IconDefault
}
