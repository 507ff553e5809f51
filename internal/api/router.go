package api

import (
	"log/slog"
	"net/http"

	"pkwallet/internal/handler"
	"pkwallet/wallet"

	_ "pkwallet/docs" // swagger spec registration

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up the router with handlers
func SetupRouter(svc *wallet.Service, logger *slog.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(svc, logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Observability
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wallet endpoints
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/connect/callback", walletHandler.ConnectCallback)
	mux.HandleFunc("/wallet/session", walletHandler.Session)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/receive", walletHandler.Receive)
	mux.HandleFunc("/wallet/transfer", walletHandler.Transfer)
	mux.HandleFunc("/wallet/transfer/callback", walletHandler.TransferCallback)
	mux.HandleFunc("/wallet/transfer/status", walletHandler.TransferStatus)
	mux.HandleFunc("/wallet/transactions", walletHandler.Transactions)

	return mux
}
