package policy

import "github.com/demeco/devis-console/internal/models"

// ActionKind identifies an operation a user can trigger on a devis
type ActionKind string

const (
	ActionView        ActionKind = "VIEW"
	ActionEdit        ActionKind = "EDIT"
	ActionDelete      ActionKind = "DELETE"
	ActionDownloadPDF ActionKind = "DOWNLOAD_PDF"
	ActionSendEmail   ActionKind = "SEND_EMAIL"
	ActionSendSms     ActionKind = "SEND_SMS"
	ActionAccept      ActionKind = "ACCEPT"
	ActionRefuse      ActionKind = "REFUSE"
	ActionExpire      ActionKind = "EXPIRE"
)

// decisionActions maps the manual decision statuses onto their action kinds
var decisionActions = map[models.Statut]ActionKind{
	models.StatutAccepte: ActionAccept,
	models.StatutRefuse:  ActionRefuse,
	models.StatutExpire:  ActionExpire,
}
