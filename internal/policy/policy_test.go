package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demeco/devis-console/internal/models"
)

// fakeGateway is a gateway double recording calls so tests can assert that
// locally rejected actions never reach the network
type fakeGateway struct {
	sendEmailCalls    int
	sendSmsCalls      int
	updateStatusCalls int
	err               error
	block             chan struct{}
}

func (f *fakeGateway) respond(id int64, statut models.Statut) (*models.Devis, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Devis{ID: id, Statut: statut}, nil
}

func (f *fakeGateway) SendByEmail(ctx context.Context, id int64, email string) (*models.Devis, error) {
	f.sendEmailCalls++
	return f.respond(id, models.StatutEnvoye)
}

func (f *fakeGateway) SendBySms(ctx context.Context, id int64, phone string) (*models.Devis, error) {
	f.sendSmsCalls++
	return f.respond(id, models.StatutEnvoye)
}

func (f *fakeGateway) UpdateStatus(ctx context.Context, id int64, statut models.Statut) (*models.Devis, error) {
	f.updateStatusCalls++
	return f.respond(id, statut)
}

func draft() *models.Devis {
	return &models.Devis{
		ID:              1,
		ClientTelephone: "+33612345678",
		ClientEmail:     "client@example.com",
		PrixTTC:         decimal.NewFromInt(1000),
		DateDevis:       models.NewDateOnly(2024, time.March, 1),
		Statut:          models.StatutBrouillon,
	}
}

func TestSendByEmail_FromDraft(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)
	d := draft()

	updated, err := p.SendByEmail(context.Background(), d, d.ClientEmail)
	if err != nil {
		t.Fatalf("SendByEmail failed: %v", err)
	}
	if updated.Statut != models.StatutEnvoye {
		t.Errorf("Expected ENVOYE, got %s", updated.Statut)
	}
	if gw.sendEmailCalls != 1 {
		t.Errorf("Expected 1 gateway call, got %d", gw.sendEmailCalls)
	}
	// The caller's copy stays untouched until it applies the returned record
	if d.Statut != models.StatutBrouillon {
		t.Errorf("Expected local copy to stay BROUILLON, got %s", d.Statut)
	}
}

func TestSendByEmail_RejectedWhenNotDraft(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)

	for _, statut := range []models.Statut{models.StatutEnvoye, models.StatutAccepte, models.StatutRefuse, models.StatutExpire} {
		d := draft()
		d.Statut = statut

		_, err := p.SendByEmail(context.Background(), d, d.ClientEmail)

		var transitionErr *models.InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Errorf("Status %s: expected *InvalidTransitionError, got %v", statut, err)
		}
		if d.Statut != statut {
			t.Errorf("Status %s: local copy mutated to %s", statut, d.Statut)
		}
	}

	if gw.sendEmailCalls != 0 {
		t.Errorf("Expected no gateway calls for illegal transitions, got %d", gw.sendEmailCalls)
	}
}

func TestSendBySms_MissingPhoneNeverReachesGateway(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)
	d := draft()

	_, err := p.SendBySms(context.Background(), d, "")

	var contactErr *models.MissingContactInfoError
	if !errors.As(err, &contactErr) {
		t.Fatalf("Expected *MissingContactInfoError, got %v", err)
	}
	if contactErr.Channel != "sms" {
		t.Errorf("Expected sms channel, got %q", contactErr.Channel)
	}
	if gw.sendSmsCalls != 0 {
		t.Errorf("Expected 0 gateway calls, got %d", gw.sendSmsCalls)
	}
}

func TestSendBySms_FromDraft(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)
	d := draft()

	updated, err := p.SendBySms(context.Background(), d, d.ClientTelephone)
	if err != nil {
		t.Fatalf("SendBySms failed: %v", err)
	}
	if updated.Statut != models.StatutEnvoye {
		t.Errorf("Expected ENVOYE, got %s", updated.Statut)
	}
	if gw.sendSmsCalls != 1 {
		t.Errorf("Expected 1 gateway call, got %d", gw.sendSmsCalls)
	}
}

func TestSetStatus_FromSent(t *testing.T) {
	for _, target := range []models.Statut{models.StatutAccepte, models.StatutRefuse, models.StatutExpire} {
		gw := &fakeGateway{}
		p := New(gw)
		d := draft()
		d.Statut = models.StatutEnvoye

		updated, err := p.SetStatus(context.Background(), d, target)
		if err != nil {
			t.Fatalf("SetStatus(%s) failed: %v", target, err)
		}
		if updated.Statut != target {
			t.Errorf("Expected %s, got %s", target, updated.Statut)
		}
		if gw.updateStatusCalls != 1 {
			t.Errorf("Expected 1 gateway call, got %d", gw.updateStatusCalls)
		}
	}
}

func TestSetStatus_RejectedOutsideSent(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)

	for _, statut := range []models.Statut{models.StatutBrouillon, models.StatutAccepte, models.StatutRefuse, models.StatutExpire} {
		d := draft()
		d.Statut = statut

		_, err := p.SetStatus(context.Background(), d, models.StatutAccepte)

		var transitionErr *models.InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Errorf("Status %s: expected *InvalidTransitionError, got %v", statut, err)
		}
		if d.Statut != statut {
			t.Errorf("Status %s: local copy mutated to %s", statut, d.Statut)
		}
	}

	if gw.updateStatusCalls != 0 {
		t.Errorf("Expected no gateway calls, got %d", gw.updateStatusCalls)
	}
}

func TestSetStatus_RejectsNonDecisionTargets(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)
	d := draft()
	d.Statut = models.StatutEnvoye

	for _, target := range []models.Statut{models.StatutBrouillon, models.StatutEnvoye, "ARCHIVE"} {
		_, err := p.SetStatus(context.Background(), d, target)

		var transitionErr *models.InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Errorf("Target %s: expected *InvalidTransitionError, got %v", target, err)
		}
	}

	if gw.updateStatusCalls != 0 {
		t.Errorf("Expected no gateway calls, got %d", gw.updateStatusCalls)
	}
}

func TestTransition_RemoteFailureLeavesLocalStateUntouched(t *testing.T) {
	gw := &fakeGateway{err: models.NewRemoteError(500, "erreur serveur", nil)}
	p := New(gw)
	d := draft()

	_, err := p.SendByEmail(context.Background(), d, d.ClientEmail)

	var remoteErr *models.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *RemoteError, got %v", err)
	}
	if d.Statut != models.StatutBrouillon {
		t.Errorf("Expected local copy to stay BROUILLON after remote failure, got %s", d.Statut)
	}

	// The in-flight slot is released on failure, so a retry goes through
	if _, err := p.SendByEmail(context.Background(), d, d.ClientEmail); err == nil {
		t.Fatal("Expected the retry to hit the failing gateway again")
	}
	if gw.sendEmailCalls != 2 {
		t.Errorf("Expected 2 gateway calls (original + retry), got %d", gw.sendEmailCalls)
	}
}

func TestTransition_DuplicateDispatchBlocked(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	p := New(gw)
	d := draft()

	done := make(chan error, 1)
	go func() {
		_, err := p.SendByEmail(context.Background(), d, d.ClientEmail)
		done <- err
	}()

	// Wait for the first request to be in flight
	for !p.inflight.Pending(d.ID, ActionSendEmail) {
		time.Sleep(time.Millisecond)
	}

	_, err := p.SendByEmail(context.Background(), d, d.ClientEmail)
	if !errors.Is(err, models.ErrRequestInFlight) {
		t.Errorf("Expected ErrRequestInFlight, got %v", err)
	}

	close(gw.block)
	if err := <-done; err != nil {
		t.Fatalf("First request failed: %v", err)
	}
	if gw.sendEmailCalls != 1 {
		t.Errorf("Expected the duplicate to never reach the gateway, got %d calls", gw.sendEmailCalls)
	}
}
