package components

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// ptBRMagnitudes are the Brazilian Portuguese distance buckets.
var ptBRMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "%s menos de um minuto", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: time.Minute},
	{D: 45 * time.Minute, Format: "%s %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s cerca de 1 hora", DivBy: time.Hour},
	{D: humanize.Day, Format: "%s cerca de %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 dia", DivBy: humanize.Day},
	{D: humanize.Month, Format: "%s %d dias", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "%s cerca de 1 mês", DivBy: humanize.Month},
	{D: humanize.Year, Format: "%s %d meses", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "%s cerca de 1 ano", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s %d anos", DivBy: humanize.Year},
}

// RelativeTime formats t relative to now in Brazilian Portuguese, e.g.
// "há 3 minutos" or "em 2 dias". A zero t yields "".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.CustomRelTime(t, now, "há", "em", ptBRMagnitudes)
}
