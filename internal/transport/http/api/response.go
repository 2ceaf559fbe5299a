package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MsgInternal      = "Erro interno do servidor"
	MsgRouteNotFound = "Rota não encontrada"
	MsgInvalidBody   = "Corpo do pedido inválido"
	MsgBodyTooLarge  = "Corpo do pedido demasiado grande"
	MsgMissingFields = "Campos obrigatórios em falta"
	MsgInvalidFields = "Dados inválidos"
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorBody is the shape of every non-2xx JSON response.
type ErrorBody struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldIssue `json:"fields,omitempty"`
	Path    string       `json:"path,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("write json failed")
	}
}

func OK(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusOK, payload)
}

func Created(w http.ResponseWriter, message, id string) {
	WriteJSON(w, http.StatusCreated, MessageBody{Message: message, ID: id})
}

func Message(w http.ResponseWriter, message, id string) {
	WriteJSON(w, http.StatusOK, MessageBody{Message: message, ID: id})
}

func Fail(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSON(w, status, ErrorBody{Error: errMsg, Message: message})
}

func FailFields(w http.ResponseWriter, status int, errMsg, message string, fields []FieldIssue) {
	WriteJSON(w, status, ErrorBody{Error: errMsg, Message: message, Fields: fields})
}

// Internal logs err against the request logger and answers 500 with errMsg.
func Internal(w http.ResponseWriter, r *http.Request, errMsg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(errMsg)
	Fail(w, http.StatusInternalServerError, errMsg, MsgInternal)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, ErrorBody{Error: MsgRouteNotFound, Path: r.URL.Path})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: "Método não permitido", Path: r.URL.Path})
}
