// Package weather produces the short conditions block attached to daily
// digests: current temperature plus a four-slot outline of the day ahead.
package weather

import (
	"context"
	"fmt"
	"strings"

	"github.com/citydigest/citydigest/internal/models"
)

// slotHours are the representative hours of the outline, one per part of day
var slotHours = [4]int{3, 9, 15, 21}

// slotLabels render each representative hour in Russian
var slotLabels = map[int]string{
	3:  "ночью",
	9:  "утром",
	15: "днём",
	21: "вечером",
}

// rolloverHour is the local hour after which the outline covers tomorrow:
// an evening subscriber cares about the next day, not the three hours left.
const rolloverHour = 22

// Slot is the forecast at one representative hour
type Slot struct {
	Hour      int     `json:"hour"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
}

// Forecast is the conditions block for one locality
type Forecast struct {
	LocalityID   string  `json:"locality_id"`
	LocalityName string  `json:"locality_name"`
	CurrentTempC float64 `json:"current_temp_c"`
	Condition    string  `json:"condition"`
	Humidity     int     `json:"humidity"`
	PressureMB   float64 `json:"pressure_mb"`
	WindKPH      float64 `json:"wind_kph"`
	// Tomorrow is set when the outline rolled over past the evening cutoff
	Tomorrow bool   `json:"tomorrow"`
	Slots    []Slot `json:"slots"`
}

// Provider resolves a locality to its forecast
type Provider interface {
	Forecast(ctx context.Context, loc models.Locality) (*Forecast, error)
}

// Render formats the forecast as digest text in Russian. Pressure converts
// from millibars to mmHg and wind from km/h to m/s, the units subscribers
// expect.
func (f *Forecast) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Погода: %s, %s.", formatTemp(f.CurrentTempC), strings.ToLower(f.Condition))

	var extra []string
	if f.Humidity > 0 {
		extra = append(extra, fmt.Sprintf("влажность %d%%", f.Humidity))
	}
	if f.PressureMB > 0 {
		extra = append(extra, fmt.Sprintf("давление %.0f мм рт. ст.", f.PressureMB*0.750062))
	}
	if f.WindKPH > 0 {
		extra = append(extra, fmt.Sprintf("ветер %.1f м/с", f.WindKPH/3.6))
	}
	if len(extra) > 0 {
		b.WriteString(" " + strings.Join(extra, ", ") + ".")
	}

	if len(f.Slots) > 0 {
		day := "сегодня"
		if f.Tomorrow {
			day = "завтра"
		}
		fmt.Fprintf(&b, "\nПрогноз на %s:", day)
		parts := make([]string, 0, len(f.Slots))
		for _, slot := range f.Slots {
			label, ok := slotLabels[slot.Hour]
			if !ok {
				label = fmt.Sprintf("в %02d:00", slot.Hour)
			}
			parts = append(parts, fmt.Sprintf("%s %s", label, formatTemp(slot.TempC)))
		}
		b.WriteString(" " + strings.Join(parts, ", "))
	}
	return b.String()
}

func formatTemp(t float64) string {
	return fmt.Sprintf("%+.0f°C", t)
}
