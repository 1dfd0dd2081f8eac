// Package dashboard derives the console's summary statistics from the
// fetched client and devis collections. Everything here is pure and
// synchronous: deterministic given the two inputs and the reference time
// used for month partitioning. Money goes through decimal arithmetic so
// revenue totals never drift.
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demeco/devis-console/internal/models"
)

// DefaultMonthsBack is the default depth of the monthly series
const DefaultMonthsBack = 6

// DefaultRecentLimit is the default length of the recent-devis list
const DefaultRecentLimit = 5

var hundred = decimal.NewFromInt(100)

// Summary holds the headline figures of the dashboard
type Summary struct {
	TotalClients          int                   `json:"totalClients"`
	DevisThisMonth        int                   `json:"devisThisMonth"`
	ChiffreAffaires       decimal.Decimal       `json:"chiffreAffaires"`
	TauxConversion        int                   `json:"tauxConversion"`
	ChangeDevis           int                   `json:"changeDevis"`
	ChangeChiffreAffaires int                   `json:"changeChiffreAffaires"`
	ParStatut             map[models.Statut]int `json:"parStatut"`
}

// monthKey identifies one calendar month
type monthKey struct {
	year  int
	month time.Month
}

func keyOf(year int, month time.Month) monthKey {
	return monthKey{year: year, month: month}
}

// ComputeSummary derives the headline figures from the fetched collections.
// now is only used to partition devis into the current and previous
// calendar months.
func ComputeSummary(clients []models.Client, devis []models.Devis, now time.Time) Summary {
	current := keyOf(now.Year(), now.Month())
	previousDate := now.AddDate(0, -1, -now.Day()+1)
	previous := keyOf(previousDate.Year(), previousDate.Month())

	var devisThisMonth, devisLastMonth int
	var devisAcceptes, devisEnvoyesOuResolus int
	chiffreAffaires := decimal.Zero
	chiffreAffairesLastMonth := decimal.Zero
	parStatut := make(map[models.Statut]int, len(models.AllStatuts))
	for _, s := range models.AllStatuts {
		parStatut[s] = 0
	}

	for _, d := range devis {
		parStatut[d.Statut]++

		month := keyOf(d.DateDevis.Year(), d.DateDevis.Month())
		if month == current {
			devisThisMonth++
		}
		if month == previous {
			devisLastMonth++
		}

		switch d.Statut {
		case models.StatutAccepte:
			devisAcceptes++
			devisEnvoyesOuResolus++
			chiffreAffaires = chiffreAffaires.Add(d.PrixTTC)
			if month == previous {
				chiffreAffairesLastMonth = chiffreAffairesLastMonth.Add(d.PrixTTC)
			}
		case models.StatutEnvoye, models.StatutRefuse:
			devisEnvoyesOuResolus++
		}
	}

	return Summary{
		TotalClients:          len(clients),
		DevisThisMonth:        devisThisMonth,
		ChiffreAffaires:       chiffreAffaires,
		TauxConversion:        ratioPercent(devisAcceptes, devisEnvoyesOuResolus),
		ChangeDevis:           percentChange(decimal.NewFromInt(int64(devisThisMonth)), decimal.NewFromInt(int64(devisLastMonth))),
		ChangeChiffreAffaires: percentChange(chiffreAffaires, chiffreAffairesLastMonth),
		ParStatut:             parStatut,
	}
}

// ratioPercent returns round(100 * num / den), and 0 when den is 0
func ratioPercent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		Mul(hundred).
		Round(0).IntPart())
}

// percentChange returns the month-over-month change as a rounded
// percentage: round(100 * (current - previous) / previous) when a previous
// value exists, 100 when activity appeared from nothing, 0 otherwise
func percentChange(current, previous decimal.Decimal) int {
	if previous.IsPositive() {
		return int(current.Sub(previous).Div(previous).Mul(hundred).Round(0).IntPart())
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

// frShortMonths holds the abbreviated French month names used as series labels
var frShortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthPoint is one bucket of the monthly series
type MonthPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Devis   int             `json:"devis"`
	Revenus decimal.Decimal `json:"revenus"`
}

// MonthlySeries buckets devis per calendar month of their quote date, from
// monthsBack-1 months before now up to now inclusive, oldest first. The
// series always has exactly monthsBack entries; months without devis keep
// zero values. Revenue only accumulates for accepted devis.
func MonthlySeries(devis []models.Devis, now time.Time, monthsBack int) []MonthPoint {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}

	points := make([]MonthPoint, 0, monthsBack)
	index := make(map[monthKey]int, monthsBack)
	// Anchor on the first of the month so AddDate never skips short months
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := monthsBack - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		index[keyOf(month.Year(), month.Month())] = len(points)
		points = append(points, MonthPoint{
			Label:   frShortMonths[month.Month()-1],
			Year:    month.Year(),
			Month:   month.Month(),
			Revenus: decimal.Zero,
		})
	}

	for _, d := range devis {
		pos, ok := index[keyOf(d.DateDevis.Year(), d.DateDevis.Month())]
		if !ok {
			continue
		}
		points[pos].Devis++
		if d.Statut == models.StatutAccepte {
			points[pos].Revenus = points[pos].Revenus.Add(d.PrixTTC)
		}
	}

	return points
}

// RecentDevis returns the devis sorted by quote date, most recent first,
// truncated to limit. Equal dates keep their input order.
func RecentDevis(devis []models.Devis, limit int) []models.Devis {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sorted := make([]models.Devis, len(devis))
	copy(sorted, devis)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateDevis.After(sorted[j].DateDevis.Time)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// StatutSlice is one sector of the status distribution chart
type StatutSlice struct {
	Statut models.Statut `json:"statut"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Count  int           `json:"count"`
}

// StatusDistribution counts devis per status in display order, excluding
// statuses with no devis so proportional charts stay readable
func StatusDistribution(devis []models.Devis) []StatutSlice {
	counts := make(map[models.Statut]int, len(models.AllStatuts))
	for _, d := range devis {
		counts[d.Statut]++
	}

	slices := make([]StatutSlice, 0, len(models.AllStatuts))
	for _, s := range models.AllStatuts {
		if counts[s] == 0 {
			continue
		}
		display := s.Display()
		slices = append(slices, StatutSlice{
			Statut: s,
			Label:  display.Label,
			Color:  display.Color,
			Count:  counts[s],
		})
	}
	return slices
}
