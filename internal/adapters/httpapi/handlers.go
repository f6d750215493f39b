package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

const maxBodyBytes = 1 << 12

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "sessionId": s.sessionID})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &queries.GetStateQuery{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &queries.GetMarketQuery{LocationID: r.URL.Query().Get("location")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTravelOptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &queries.GetTravelOptionsQuery{FromID: r.URL.Query().Get("from")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &queries.GetViewQuery{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleLedger serves the history, optionally filtered by ?type= and ?good=
// and paged by ?limit= and ?offset=, together with the whole-session P&L.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := &ledgerQueries.GetTransactionsQuery{SessionID: s.sessionID}
	if v := params.Get("type"); v != "" {
		query.TransactionType = &v
	}
	if v := params.Get("good"); v != "" {
		query.GoodID = &v
	}
	var err error
	if query.Limit, err = intParam(params.Get("limit"), "limit"); err != nil {
		s.writeError(w, err)
		return
	}
	if query.Offset, err = intParam(params.Get("offset"), "offset"); err != nil {
		s.writeError(w, err)
		return
	}

	txResp, err := s.mediator.Send(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plResp, err := s.mediator.Send(r.Context(), &ledgerQueries.GetProfitLossQuery{SessionID: s.sessionID})
	if err != nil {
		s.writeError(w, err)
		return
	}

	transactions, ok := txResp.(*ledgerQueries.GetTransactionsResponse)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", txResp))
		return
	}
	pl, ok := plResp.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", plResp))
		return
	}

	writeJSON(w, http.StatusOK, LedgerResponse{
		Transactions: transactions.Transactions,
		Total:        transactions.Total,
		ProfitLoss:   pl,
	})
}

func (s *Server) handleHauls(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.mediator.Send(r.Context(), &queries.FindHaulsQuery{Limit: limit})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func intParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, shared.NewValidationError(field, "must be a non-negative integer")
	}
	return n, nil
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.mediator.Send(r.Context(), &commands.BuyGoodCommand{GoodID: req.GoodID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, ok := resp.(*game.TradeResult)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, tradeResponse(result))
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.mediator.Send(r.Context(), &commands.SellGoodCommand{GoodID: req.GoodID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, ok := resp.(*game.TradeResult)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, tradeResponse(result))
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	var req TravelRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.mediator.Send(r.Context(), &commands.TravelCommand{Destination: req.DestinationID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, ok := resp.(*game.TravelResult)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, travelResponse(result))
}

func (s *Server) handleRefuel(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &commands.RefuelCommand{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, ok := resp.(*game.RefuelResult)
	if !ok {
		s.writeError(w, fmt.Errorf("unexpected response type %T", resp))
		return
	}
	writeJSON(w, http.StatusOK, refuelResponse(result))
}

// decode reads a JSON body and checks its validate tags
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return shared.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return shared.NewValidationError(fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return shared.NewValidationError("body", err.Error())
	}
	return nil
}

// writeError maps application errors onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		lookup     *shared.LookupError
		validation *shared.ValidationError
	)
	switch {
	case errors.As(err, &lookup):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "internal"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
