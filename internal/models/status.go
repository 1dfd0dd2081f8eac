package models

// Statut represents the lifecycle state of a devis
type Statut string

const (
	// StatutBrouillon indicates a draft devis, still editable and not yet sent
	StatutBrouillon Statut = "BROUILLON"

	// StatutEnvoye indicates the devis was sent to the client and awaits a decision
	StatutEnvoye Statut = "ENVOYE"

	// StatutAccepte indicates the client accepted the devis
	StatutAccepte Statut = "ACCEPTE"

	// StatutRefuse indicates the client declined the devis
	StatutRefuse Statut = "REFUSE"

	// StatutExpire indicates the offer lapsed before the client decided
	StatutExpire Statut = "EXPIRE"
)

// AllStatuts lists every status in display order
var AllStatuts = []Statut{
	StatutBrouillon,
	StatutEnvoye,
	StatutAccepte,
	StatutRefuse,
	StatutExpire,
}

// statutTransitions lists the legal outgoing transitions per status.
// Sending (email or SMS) is the only way out of BROUILLON; manual
// decisions (accept/refuse/expire) are only legal from ENVOYE.
var statutTransitions = map[Statut]map[Statut]bool{
	StatutBrouillon: {StatutEnvoye: true},
	StatutEnvoye:    {StatutAccepte: true, StatutRefuse: true, StatutExpire: true},
	StatutAccepte:   {},
	StatutRefuse:    {},
	StatutExpire:    {},
}

// IsValid checks if the status is a valid Statut value
func (s Statut) IsValid() bool {
	_, ok := statutTransitions[s]
	return ok
}

// IsTerminal returns true if the status accepts no further transitions
func (s Statut) IsTerminal() bool {
	next, ok := statutTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo checks whether moving from s to target is legal
func (s Statut) CanTransitionTo(target Statut) bool {
	next, ok := statutTransitions[s]
	if !ok {
		return false
	}
	return next[target]
}

// String returns the string representation of the status
func (s Statut) String() string {
	return string(s)
}

// StatutDisplay holds the presentation attributes of a status.
// Kept as plain data so rendering surfaces never branch on status values.
type StatutDisplay struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
	Color string `json:"color"`
}

var statutDisplays = map[Statut]StatutDisplay{
	StatutBrouillon: {Label: "Brouillon", Badge: "warning", Color: "#ffc107"},
	StatutEnvoye:    {Label: "Envoyé", Badge: "info", Color: "#17a2b8"},
	StatutAccepte:   {Label: "Accepté", Badge: "success", Color: "#28a745"},
	StatutRefuse:    {Label: "Refusé", Badge: "danger", Color: "#dc3545"},
	StatutExpire:    {Label: "Expiré", Badge: "secondary", Color: "#6c757d"},
}

// Display returns the presentation attributes for the status.
// Unknown values fall back to the raw status string with a neutral badge.
func (s Statut) Display() StatutDisplay {
	if d, ok := statutDisplays[s]; ok {
		return d
	}
	return StatutDisplay{Label: string(s), Badge: "secondary", Color: "#6c757d"}
}
