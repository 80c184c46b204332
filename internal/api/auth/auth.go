package auth

import (
	"errors"
	dto "mermaid_slot/internal/api/dto/auth"
	"mermaid_slot/internal/repository"
	"mermaid_slot/internal/service"
	authServ "mermaid_slot/internal/service/auth"
	"mermaid_slot/pkg/req"
	"mermaid_slot/pkg/resp"
	"net/http"

	"go.uber.org/zap"
)

type Handler struct {
	serv   service.AuthService
	logger *zap.Logger
}

func NewHandler(serv service.AuthService, logger *zap.Logger) *Handler {
	return &Handler{
		serv:   serv,
		logger: logger,
	}
}

// Register создаёт учётную запись
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = h.serv.Register(r.Context(), requestBody.Username, requestBody.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserExists):
			http.Error(w, "username already exists", http.StatusConflict)
		case errors.Is(err, authServ.ErrEmptyCredentials), errors.Is(err, authServ.ErrMalformedCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("register", zap.Error(err))
			http.Error(w, "register failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Login проверяет пароль и возвращает access_token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Username, requestBody.Password)
	if err != nil {
		switch {
		case errors.Is(err, authServ.ErrInvalidCredentials), errors.Is(err, authServ.ErrEmptyCredentials):
			http.Error(w, "login failed", http.StatusUnauthorized)
		default:
			h.logger.Error("login", zap.Error(err))
			http.Error(w, "login failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Username:    data.Username,
		AccessToken: data.AccessToken,
	})
}
