// Package policy owns the devis lifecycle rules: which actions are legal
// for a given status, and how transitions are carried out through the
// backend gateway. Every rendering surface consumes the same policy, so
// eligibility logic exists in exactly one place.
package policy

import (
	"context"

	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
)

// DevisGateway is the slice of the backend gateway the policy needs to
// carry out transitions
type DevisGateway interface {
	SendByEmail(ctx context.Context, id int64, email string) (*models.Devis, error)
	SendBySms(ctx context.Context, id int64, phone string) (*models.Devis, error)
	UpdateStatus(ctx context.Context, id int64, statut models.Statut) (*models.Devis, error)
}

// Policy decides which lifecycle actions are legal for a devis and executes
// the requested transitions. Illegal requests are rejected locally, before
// any network call; remote failures leave the caller's copy untouched so
// the action can be retried.
type Policy struct {
	gateway  DevisGateway
	inflight *InFlight
}

// New creates a Policy backed by the given gateway
func New(gw DevisGateway) *Policy {
	return &Policy{
		gateway:  gw,
		inflight: NewInFlight(),
	}
}

// CanEdit reports whether the devis content may still be modified.
// Only drafts are editable; every status past BROUILLON freezes content.
func (p *Policy) CanEdit(d *models.Devis) bool {
	return d.Statut == models.StatutBrouillon
}

// CanSend reports whether the devis may be sent to the client,
// by email or by SMS
func (p *Policy) CanSend(d *models.Devis) bool {
	return d.Statut == models.StatutBrouillon
}

// CanChangeStatus reports whether a manual decision (accept, refuse,
// expire) may be recorded
func (p *Policy) CanChangeStatus(d *models.Devis) bool {
	return d.Statut == models.StatutEnvoye
}

// AvailableActions returns the actions currently legal for the devis.
// Viewing, deleting and downloading the PDF are always available.
func (p *Policy) AvailableActions(d *models.Devis) []ActionKind {
	var actions []ActionKind

	if p.CanSend(d) {
		actions = append(actions, ActionSendEmail, ActionSendSms)
	}
	if p.CanEdit(d) {
		actions = append(actions, ActionEdit)
	}
	if p.CanChangeStatus(d) {
		actions = append(actions, ActionAccept, ActionRefuse, ActionExpire)
	}

	actions = append(actions, ActionView, ActionDelete, ActionDownloadPDF)
	return actions
}

// SendByEmail sends the devis to the given address and returns the updated
// record, which the caller must apply at the same identifier in its own
// collection. The transition is rejected locally unless the devis is a
// draft with an address to send to.
func (p *Policy) SendByEmail(ctx context.Context, d *models.Devis, email string) (*models.Devis, error) {
	if email == "" {
		return nil, models.NewMissingContactInfoError(d.ID, "email")
	}
	return p.transition(ctx, d, ActionSendEmail, func(ctx context.Context) (*models.Devis, error) {
		return p.gateway.SendByEmail(ctx, d.ID, email)
	})
}

// SendBySms sends the devis to the given phone number and returns the
// updated record. The transition is rejected locally unless the devis is a
// draft with a phone number to send to.
func (p *Policy) SendBySms(ctx context.Context, d *models.Devis, phone string) (*models.Devis, error) {
	if phone == "" {
		return nil, models.NewMissingContactInfoError(d.ID, "sms")
	}
	return p.transition(ctx, d, ActionSendSms, func(ctx context.Context) (*models.Devis, error) {
		return p.gateway.SendBySms(ctx, d.ID, phone)
	})
}

// SetStatus records a manual decision on a sent devis and returns the
// updated record. Only ACCEPTE, REFUSE and EXPIRE are reachable this way,
// and only from ENVOYE.
func (p *Policy) SetStatus(ctx context.Context, d *models.Devis, target models.Statut) (*models.Devis, error) {
	action, ok := decisionActions[target]
	if !ok {
		return nil, models.NewInvalidTransitionError(d.ID, d.Statut, "SET_"+target.String())
	}
	return p.transition(ctx, d, action, func(ctx context.Context) (*models.Devis, error) {
		return p.gateway.UpdateStatus(ctx, d.ID, target)
	})
}

// targetStatus maps an action onto the status it leads to
func targetStatus(action ActionKind) models.Statut {
	switch action {
	case ActionSendEmail, ActionSendSms:
		return models.StatutEnvoye
	case ActionAccept:
		return models.StatutAccepte
	case ActionRefuse:
		return models.StatutRefuse
	case ActionExpire:
		return models.StatutExpire
	}
	return ""
}

// transition runs the shared checks around a remote status mutation: the
// move must be legal for the current status, and no request of the same
// kind may already be in flight for this devis.
func (p *Policy) transition(ctx context.Context, d *models.Devis, action ActionKind, call func(context.Context) (*models.Devis, error)) (*models.Devis, error) {
	if !d.Statut.CanTransitionTo(targetStatus(action)) {
		return nil, models.NewInvalidTransitionError(d.ID, d.Statut, string(action))
	}

	if !p.inflight.Begin(d.ID, action) {
		return nil, models.ErrRequestInFlight
	}
	defer p.inflight.End(d.ID, action)

	updated, err := call(ctx)
	if err != nil {
		// Local state stays at the pre-transition status so the caller can retry
		logger.LogError(ctx, "Devis transition failed", err)
		return nil, err
	}

	logger.LogStatusTransition(ctx, d.ID, d.Statut.String(), updated.Statut.String())
	return updated, nil
}
