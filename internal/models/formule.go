package models

// Formule represents the service tier of a devis
type Formule string

const (
	FormuleEconomic     Formule = "ECONOMIC"
	FormuleEconomicPlus Formule = "ECONOMIC_PLUS"
	FormuleSolo         Formule = "SOLO"
	FormuleConfort      Formule = "CONFORT"
	FormuleLuxe         Formule = "LUXE"
)

// AllFormules lists every formule in display order
var AllFormules = []Formule{
	FormuleEconomic,
	FormuleEconomicPlus,
	FormuleSolo,
	FormuleConfort,
	FormuleLuxe,
}

// IsValid checks if the formule is a valid Formule value
func (f Formule) IsValid() bool {
	_, ok := formuleDisplays[f]
	return ok
}

// String returns the string representation of the formule
func (f Formule) String() string {
	return string(f)
}

// FormuleDisplay holds the presentation attributes of a formule
type FormuleDisplay struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

var formuleDisplays = map[Formule]FormuleDisplay{
	FormuleEconomic:     {Label: "Économique", Badge: "success"},
	FormuleEconomicPlus: {Label: "Économique Plus", Badge: "info"},
	FormuleSolo:         {Label: "Solo", Badge: "warning"},
	FormuleConfort:      {Label: "Confort", Badge: "primary"},
	FormuleLuxe:         {Label: "Clé en main", Badge: "danger"},
}

// Display returns the presentation attributes for the formule.
// Unknown values fall back to the raw formule string with a neutral badge.
func (f Formule) Display() FormuleDisplay {
	if d, ok := formuleDisplays[f]; ok {
		return d
	}
	return FormuleDisplay{Label: string(f), Badge: "secondary"}
}
