package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"vscch/internal/router"
	appver "vscch/internal/version"
)

const maxBody = 1 << 20

// LegacyPaths maps the camelCase paths of older front ends to operations.
var LegacyPaths = map[string]string{
	"getEnv":         "get-environment",
	"getFolder":      "get-folder",
	"verifyVscode":   "verify-editor",
	"verifyCompiler": "verify-compiler",
	"saveProfile":    "save-profile",
	"loadProfile":    "load-profile",
	"done":           "finish",
}

func mountAPIGin(r *gin.Engine, rt *router.Router) {
	api := r.Group("/api")
	api.GET("/health", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	api.GET("/version", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
	}))
	api.GET("/operations", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, rt.Operations())
	}))

	known := map[string]bool{}
	for _, op := range rt.Operations() {
		known[op] = true
		r.POST("/"+op, gin.WrapF(operationHandler(rt, op)))
	}
	for path, op := range LegacyPaths {
		if known[op] {
			r.POST("/"+path, gin.WrapF(operationHandler(rt, op)))
		}
	}
}

// operationHandler passes the raw body to the router. Handler failures are
// answered with their text so the caller can show them.
func operationHandler(rt *router.Router, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBody))
		if err != nil {
			writeText(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		resp, err := rt.Dispatch(req.Context(), op, string(body))
		switch {
		case errors.Is(err, router.ErrClosed):
			writeText(w, http.StatusGone, err.Error())
		case err != nil:
			writeText(w, http.StatusInternalServerError, err.Error())
		default:
			writeText(w, http.StatusOK, resp)
		}
	}
}

func writeText(w http.ResponseWriter, code int, s string) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, s)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
