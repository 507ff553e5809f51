package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pkwallet/internal/model"
	"pkwallet/wallet"
)

// WalletHandler exposes the wallet flows over HTTP.
type WalletHandler struct {
	svc    *wallet.Service
	logger *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc *wallet.Service, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{svc: svc, logger: logger}
}

// Connect handles POST /wallet/connect
// @Summary      Start wallet connect
// @Description  Returns the portal URL that runs the passkey ceremony
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{PortalURL: h.svc.ConnectURL()})
}

// ConnectCallback handles GET /wallet/connect/callback
// @Summary      Portal connect callback
// @Description  Completes the passkey ceremony and establishes the session
// @Tags         wallet
// @Produce      json
// @Param        address        query  string  false  "Wallet address"
// @Param        credential_id  query  string  false  "Credential identifier"
// @Param        error          query  string  false  "Portal error code"
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/connect/callback [get]
func (h *WalletHandler) ConnectCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.CompleteConnect(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Session handles GET /wallet/session
// @Summary      Get connected wallet
// @Description  Returns the current session, refreshing its rolling expiry
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Session(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Deletes the session record
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.DisconnectResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.svc.Disconnect(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DisconnectResponse{Success: true, Message: "Wallet disconnected"})
}

// Balance handles GET /wallet/balance
// @Summary      Get wallet balance
// @Description  Gets the token and SOL balances of the connected wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Balance(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Receive handles GET /wallet/receive
// @Summary      Get receive address
// @Description  Returns the wallet address with a QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReceiveResponse
// @Router       /wallet/receive [get]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Receive(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Transfer handles POST /wallet/transfer
// @Summary      Prepare a sponsored transfer
// @Description  Builds the unsigned transaction and returns the portal sign URL
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer data"
// @Success      200      {object}  model.TransferPreparedResponse
// @Router       /wallet/transfer [post]
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.PrepareTransfer(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TransferCallback handles GET /wallet/transfer/callback
// @Summary      Portal sign callback
// @Description  Submits the user-signed transaction through the fee-sponsoring relay
// @Tags         wallet
// @Produce      json
// @Param        request_id  query  string  false  "Pending transfer id"
// @Param        signed_tx   query  string  false  "Base64 signed transaction"
// @Param        error       query  string  false  "Portal error code"
// @Success      200  {object}  model.TransferSubmittedResponse
// @Router       /wallet/transfer/callback [get]
func (h *WalletHandler) TransferCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.CompleteTransfer(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TransferStatus handles GET /wallet/transfer/status
// @Summary      Get transfer status
// @Description  Reads the confirmation state; with wait=true blocks until the commitment level is reached or the wait budget runs out
// @Tags         wallet
// @Produce      json
// @Param        txId  query  string  true   "Transaction signature"
// @Param        wait  query  bool    false  "Block until confirmed"
// @Success      200  {object}  model.TransferStatusResponse
// @Router       /wallet/transfer/status [get]
func (h *WalletHandler) TransferStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	txID := r.URL.Query().Get("txId")
	if txID == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "txId is required"})
		return
	}

	var (
		resp *model.TransferStatusResponse
		err  error
	)
	if r.URL.Query().Get("wait") == "true" {
		resp, err = h.svc.AwaitConfirmation(r.Context(), txID)
	} else {
		resp, err = h.svc.TransferStatus(r.Context(), txID)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Transactions handles GET /wallet/transactions
// @Summary      Get wallet transactions
// @Description  Gets the token transfer history with filtering
// @Tags         wallet
// @Produce      json
// @Param        type       query  string  false  "Transaction type: DEBIT or CREDIT"
// @Param        from       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query  string  false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query  string  false  "Minimum amount"
// @Param        maxAmount  query  string  false  "Maximum amount"
// @Success      200  {object}  model.HistoryResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var req model.HistoryRequest

	const dateLayout = "2006-01-02"
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		req.From = &t
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		// End of day so the filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if minAmount := r.URL.Query().Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := r.URL.Query().Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.History(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError logs the raw error and answers with its user-facing
// bucket. The raw text never reaches the client.
func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	ue := wallet.Classify(err)
	h.logger.Error("request failed", "code", ue.Code, "err", err)
	writeJSON(w, statusForCode(ue.Code), model.ErrorResponse{Error: ue.Message, Code: ue.Code})
}

func statusForCode(code string) int {
	switch code {
	case wallet.CodeNoSession:
		return http.StatusUnauthorized
	case wallet.CodeCancelled, wallet.CodeInvalidInput:
		return http.StatusBadRequest
	case wallet.CodeNotInitialized, wallet.CodeInsufficient:
		return http.StatusUnprocessableEntity
	case wallet.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
