package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/server/views"
	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := common.ErrorInternal.Error()
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrAccountNotFound), errors.Is(err, common.ErrorNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrDeserialization), errors.Is(err, common.ErrIdentityMismatch), errors.Is(err, common.ErrInvalidState):
		code, msg = http.StatusUnprocessableEntity, err.Error()
	default:
		s.logger.Error(r.Context(), "explorer request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, errorResponse{Error: msg})
}

func pubkeyParam(r *http.Request, name string) (address.Pubkey, error) {
	p, err := address.Parse(chi.URLParam(r, name))
	if err != nil {
		return address.Pubkey{}, fmt.Errorf("%w: %s: %v", common.ErrInvalidInput, name, err)
	}
	return p, nil
}

// uintQuery reads an optional unsigned query parameter; absent means zero.
func uintQuery(r *http.Request, name string) (uint32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", common.ErrInvalidInput, name, v)
	}
	return uint32(n), nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	identity, err := pubkeyParam(r, "identity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lamports, err := s.queries.Balance(r.Context(), identity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &pb.BalanceResponse{Identity: identity.String(), Lamports: lamports})
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	identity, err := pubkeyParam(r, "identity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	user, err := s.queries.User(r.Context(), identity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.User(s.queries.UserAddress(identity), user))
}

func (s *Server) connection(w http.ResponseWriter, r *http.Request) {
	addr, err := pubkeyParam(r, "address")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	conn, err := s.queries.Connection(r.Context(), addr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.Connection(conn))
}

func (s *Server) connections(w http.ResponseWriter, r *http.Request) {
	acceptor, err := pubkeyParam(r, "identity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from, err := uintQuery(r, "from")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := uintQuery(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := s.queries.Connections(r.Context(), acceptor, from, int(limit))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.Connections(page))
}

func (s *Server) transaction(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.queries.Receipt(r.Context(), chi.URLParam(r, "signature"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views.Receipt(receipt))
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	signer, err := pubkeyParam(r, "identity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: limit %q", common.ErrInvalidInput, v))
			return
		}
	}
	receipts, err := s.queries.Receipts(r.Context(), signer, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &pb.ListReceiptsResponse{Receipts: views.Receipts(receipts)})
}
