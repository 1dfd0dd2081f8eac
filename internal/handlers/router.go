package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/demeco/devis-console/internal/console"
)

// NewRouter wires every console route onto a mux router
func NewRouter(clients *console.ClientService, devis *console.DevisService) *mux.Router {
	r := mux.NewRouter()
	r.Use(CorrelationID, Recovery)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	clientHandler := NewClientHandler(clients)
	api.HandleFunc("/clients", clientHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/clients", clientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/clients/{id:[0-9]+}/force", clientHandler.ForceDelete).Methods(http.MethodDelete)

	devisHandler := NewDevisHandler(devis)
	api.HandleFunc("/devis", devisHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/devis", devisHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/devis/statuts", devisHandler.Statuses).Methods(http.MethodGet)
	api.HandleFunc("/devis/statut/{statut}", devisHandler.ByStatus).Methods(http.MethodGet)
	api.HandleFunc("/devis/client/{clientId:[0-9]+}", devisHandler.ByClient).Methods(http.MethodGet)
	api.HandleFunc("/devis/{id:[0-9]+}", devisHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/devis/{id:[0-9]+}", devisHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/devis/{id:[0-9]+}", devisHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/devis/{id:[0-9]+}/statut", devisHandler.UpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/devis/{id:[0-9]+}/envoyer-email", devisHandler.SendEmail).Methods(http.MethodPost)
	api.HandleFunc("/devis/{id:[0-9]+}/envoyer-sms", devisHandler.SendSms).Methods(http.MethodPost)
	api.HandleFunc("/devis/{id:[0-9]+}/actions", devisHandler.Actions).Methods(http.MethodGet)

	dashboardHandler := NewDashboardHandler(clients, devis)
	api.HandleFunc("/dashboard/summary", dashboardHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/monthly", dashboardHandler.Monthly).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/recent", dashboardHandler.Recent).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/repartition", dashboardHandler.Repartition).Methods(http.MethodGet)

	return r
}
