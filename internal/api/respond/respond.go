package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type payload struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, payload{Data: data})
}

// Created writes a 201 response with the given data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, payload{Data: data})
}

// Fail writes an error response with the given status code.
func Fail(w http.ResponseWriter, code int, err error) {
	write(w, code, payload{Error: err.Error()})
}

func write(w http.ResponseWriter, code int, p payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
