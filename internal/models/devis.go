package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend serializes money fields as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// hundred is the divisor for percentage arithmetic
var hundred = decimal.NewFromInt(100)

// Devis represents a moving quote.
//
// Client fields beyond ClientID are denormalized by the backend for display.
// Money fields use decimal arithmetic; MontantArrhes is always derived from
// PrixTTC and PourcentageArrhes, never set independently. Each leg
// (departure, arrival) carries either one fixed date or a min/max range,
// gated by its flexible flag.
type Devis struct {
	ID int64 `json:"id"`

	ClientID        int64  `json:"clientId"`
	ClientNom       string `json:"clientNom,omitempty"`
	ClientEmail     string `json:"clientEmail,omitempty"`
	ClientTelephone string `json:"clientTelephone,omitempty"`

	AdresseDepart     string `json:"adresseDepart"`
	AdresseArrivee    string `json:"adresseArrivee"`
	VilleDepart       string `json:"villeDepart"`
	VilleArrivee      string `json:"villeArrivee"`
	HabitationDepart  string `json:"habitationDepart,omitempty"`
	HabitationArrivee string `json:"habitationArrivee,omitempty"`

	Volume  float64 `json:"volume"`
	Formule Formule `json:"formule"`

	PrixTTC           decimal.Decimal `json:"prixTTC"`
	PourcentageArrhes decimal.Decimal `json:"pourcentageArrhes"`
	MontantArrhes     decimal.Decimal `json:"montantArrhes"`

	DateDevis DateOnly `json:"dateDevis"`

	DateDepartFlexible bool      `json:"dateDepartFlexible"`
	DateDepart         *DateOnly `json:"dateDepart,omitempty"`
	DateDepartMin      *DateOnly `json:"dateDepartMin,omitempty"`
	DateDepartMax      *DateOnly `json:"dateDepartMax,omitempty"`

	DateArriveeFlexible bool      `json:"dateArriveeFlexible"`
	DateArrivee         *DateOnly `json:"dateArrivee,omitempty"`
	DateArriveeMin      *DateOnly `json:"dateArriveeMin,omitempty"`
	DateArriveeMax      *DateOnly `json:"dateArriveeMax,omitempty"`

	Observation string `json:"observation,omitempty"`
	Statut      Statut `json:"statut"`
}

// RecomputeArrhes derives the deposit amount from the gross price and the
// deposit percentage: MontantArrhes = PrixTTC * PourcentageArrhes / 100,
// rounded to the cent. Call it whenever either input changes.
func (d *Devis) RecomputeArrhes() {
	d.MontantArrhes = d.PrixTTC.Mul(d.PourcentageArrhes).Div(hundred).Round(2)
}

// SetPrix updates the gross price and keeps the deposit amount consistent
func (d *Devis) SetPrix(prix decimal.Decimal) {
	d.PrixTTC = prix
	d.RecomputeArrhes()
}

// SetPourcentageArrhes updates the deposit percentage and keeps the deposit
// amount consistent
func (d *Devis) SetPourcentageArrhes(pct decimal.Decimal) {
	d.PourcentageArrhes = pct
	d.RecomputeArrhes()
}

// NormalizeDates enforces that exactly one of {fixed date, min/max range}
// is carried per leg: the flexible flag decides which, the other is cleared
func (d *Devis) NormalizeDates() {
	if d.DateDepartFlexible {
		d.DateDepart = nil
	} else {
		d.DateDepartMin = nil
		d.DateDepartMax = nil
	}
	if d.DateArriveeFlexible {
		d.DateArrivee = nil
	} else {
		d.DateArriveeMin = nil
		d.DateArriveeMax = nil
	}
}

// Validate checks the locally required fields and enumeration values before
// a create or update call. Pricing rules stay with the backend.
func (d *Devis) Validate() error {
	if d.ClientID == 0 {
		return NewValidationError("clientId", "le client est obligatoire")
	}
	if d.VilleDepart == "" {
		return NewValidationError("villeDepart", "la ville de départ est obligatoire")
	}
	if d.VilleArrivee == "" {
		return NewValidationError("villeArrivee", "la ville d'arrivée est obligatoire")
	}
	if d.Volume <= 0 {
		return NewValidationError("volume", "le volume doit être strictement positif")
	}
	if !d.Formule.IsValid() {
		return NewValidationError("formule", "formule inconnue")
	}
	if d.PrixTTC.IsNegative() {
		return NewValidationError("prixTTC", "le prix ne peut pas être négatif")
	}
	if d.PourcentageArrhes.IsNegative() || d.PourcentageArrhes.GreaterThan(hundred) {
		return NewValidationError("pourcentageArrhes", "le pourcentage d'arrhes doit être compris entre 0 et 100")
	}
	if d.DateDevis.IsZero() {
		return NewValidationError("dateDevis", "la date du devis est obligatoire")
	}
	return nil
}
