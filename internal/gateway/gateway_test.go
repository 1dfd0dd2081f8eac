package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/demeco/devis-console/internal/models"
)

func newTestGateway(handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL, 5*time.Second), server
}

func TestListDevis_Success(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/devis" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"statut":"BROUILLON","prixTTC":1000.50},{"id":2,"statut":"ENVOYE","prixTTC":250}]`))
	})
	defer server.Close()

	devis, err := gw.ListDevis(context.Background())
	if err != nil {
		t.Fatalf("ListDevis failed: %v", err)
	}
	if len(devis) != 2 {
		t.Fatalf("Expected 2 devis, got %d", len(devis))
	}
	if devis[0].Statut != models.StatutBrouillon {
		t.Errorf("Expected BROUILLON, got %s", devis[0].Statut)
	}
	if devis[0].PrixTTC.String() != "1000.5" {
		t.Errorf("Expected price 1000.5, got %s", devis[0].PrixTTC)
	}
}

func TestSendBySms_QueryAndMethod(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/devis/42/envoyer-sms" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("numeroTelephone"); got != "+33612345678" {
			t.Errorf("Unexpected phone query: %q", got)
		}
		w.Write([]byte(`{"id":42,"statut":"ENVOYE"}`))
	})
	defer server.Close()

	updated, err := gw.SendBySms(context.Background(), 42, "+33612345678")
	if err != nil {
		t.Fatalf("SendBySms failed: %v", err)
	}
	if updated.Statut != models.StatutEnvoye {
		t.Errorf("Expected ENVOYE, got %s", updated.Statut)
	}
}

func TestSendByEmail_QueryAndMethod(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devis/7/envoyer-email" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "client@example.com" {
			t.Errorf("Unexpected email query: %q", got)
		}
		w.Write([]byte(`{"id":7,"statut":"ENVOYE"}`))
	})
	defer server.Close()

	updated, err := gw.SendByEmail(context.Background(), 7, "client@example.com")
	if err != nil {
		t.Fatalf("SendByEmail failed: %v", err)
	}
	if updated.Statut != models.StatutEnvoye {
		t.Errorf("Expected ENVOYE, got %s", updated.Statut)
	}
}

func TestUpdateStatus_PatchWithQuery(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/devis/5/statut" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("statut"); got != "ACCEPTE" {
			t.Errorf("Unexpected statut query: %q", got)
		}
		w.Write([]byte(`{"id":5,"statut":"ACCEPTE"}`))
	})
	defer server.Close()

	updated, err := gw.UpdateStatus(context.Background(), 5, models.StatutAccepte)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Statut != models.StatutAccepte {
		t.Errorf("Expected ACCEPTE, got %s", updated.Statut)
	}
}

func TestDo_ServerMessageSurfacedVerbatim(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Le client possède encore des devis"}`))
	})
	defer server.Close()

	err := gw.DeleteClient(context.Background(), 3)
	if err == nil {
		t.Fatal("Expected an error")
	}

	var remoteErr *models.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *models.RemoteError, got %T", err)
	}
	if remoteErr.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Message != "Le client possède encore des devis" {
		t.Errorf("Expected server message verbatim, got %q", remoteErr.Message)
	}
}

func TestDo_GenericFallbackWithoutEnvelope(t *testing.T) {
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})
	defer server.Close()

	_, err := gw.ListClients(context.Background())

	var remoteErr *models.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *models.RemoteError, got %T", err)
	}
	if remoteErr.Message != fallbackMessage {
		t.Errorf("Expected fallback message, got %q", remoteErr.Message)
	}
}

func TestDo_NetworkErrorHasNoStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	gw := New(server.URL, time.Second)
	server.Close() // the next call hits a closed listener

	_, err := gw.ListDevis(context.Background())

	var remoteErr *models.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *models.RemoteError, got %T", err)
	}
	if remoteErr.StatusCode != 0 {
		t.Errorf("Expected no status code on transport failure, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Unwrap() == nil {
		t.Error("Expected the transport error to be wrapped")
	}
}

func TestForceDeleteClient_Path(t *testing.T) {
	var gotPath string
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := gw.ForceDeleteClient(context.Background(), 11); err != nil {
		t.Fatalf("ForceDeleteClient failed: %v", err)
	}
	if gotPath != "/clients/11/force" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
}

func TestListDevisByStatus_Path(t *testing.T) {
	var gotPath string
	gw, server := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	if _, err := gw.ListDevisByStatus(context.Background(), models.StatutEnvoye); err != nil {
		t.Fatalf("ListDevisByStatus failed: %v", err)
	}
	if gotPath != "/devis/statut/ENVOYE" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
}
