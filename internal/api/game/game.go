package game

import (
	"errors"
	dto "mermaid_slot/internal/api/dto/game"
	"mermaid_slot/internal/converter"
	"mermaid_slot/internal/middleware"
	"mermaid_slot/internal/service/session"
	"mermaid_slot/internal/service/slot"
	"mermaid_slot/pkg/req"
	"mermaid_slot/pkg/resp"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

type Handler struct {
	pool   *session.Pool
	logger *zap.Logger
}

func NewHandler(pool *session.Pool, logger *zap.Logger) *Handler {
	return &Handler{
		pool:   pool,
		logger: logger,
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return session.Session{}, false
	}
	return h.pool.Get(username), true
}

// Spin проводит раунд и отвечает после его окончания
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ch, err := sess.Game.Spin(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, slot.ErrSpinInProgress):
			http.Error(w, "spin in progress", http.StatusConflict)
		case errors.Is(err, slot.ErrInsufficientFunds):
			http.Error(w, "invalid bet amount", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "spin failed", http.StatusServiceUnavailable)
		}
		return
	}

	res := <-ch
	if res.Err != nil {
		h.logger.Error("spin", zap.String("username", sess.Game.Username()), zap.Error(res.Err))
		http.Error(w, "round failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(res.Outcome))
}

// SetCoin меняет значение монеты. Некорректное тело оставляет прежнее значение.
func (h *Handler) SetCoin(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	requestBody, err := req.Decode[dto.CoinRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err = sess.Game.SetCoinValue(requestBody.Value); err != nil {
		http.Error(w, "spin in progress", http.StatusConflict)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(sess.Game.Username(), sess.Game.State()))
}

func (h *Handler) SetMultiplier(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	requestBody, err := req.Decode[dto.MultiplierRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err = sess.Game.SetBetMultiplier(requestBody.Value); err != nil {
		http.Error(w, "spin in progress", http.StatusConflict)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(sess.Game.Username(), sess.Game.State()))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(sess.Game.Username(), sess.Game.State()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	stats, err := sess.Game.Stats(r.Context())
	if err != nil {
		h.logger.Error("stats", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(stats))
}

// History последние раунды, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	rounds, err := sess.Game.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("history", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(rounds))
}

// Events сообщения и звуки с последнего запроса
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var events dto.EventsResponse
	if sess.Events != nil {
		events = converter.ToEventsResponse(sess.Events.Drain())
	} else {
		events = dto.EventsResponse{Events: []dto.Event{}}
	}
	resp.WriteJSONResponse(w, http.StatusOK, events)
}
