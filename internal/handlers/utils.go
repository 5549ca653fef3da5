package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/adapter"
	"github.com/asunkara/PDFChatAPI/internal/adapter/utils"
	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// can't send a clean status code at this point
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, httpCode))
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

// sessionIdOf reads the caller's session id, minting one when absent. The id
// is echoed back so a first-time caller can keep using it.
func sessionIdOf(r *http.Request, w http.ResponseWriter) string {
	sessionId := r.Header.Get(config.SESSION_ID_HEADER)
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
		logRH.Debug("New session", "session Id", sessionId)
	}
	w.Header().Set(config.SESSION_ID_HEADER, sessionId)
	return sessionId
}

// requestContext derives the per-operation deadline while keeping the trace
// id that the middleware injected.
func requestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeout)
}

func sessionModelSnapshot(ctx context.Context, sessionId string) (sessionModel.Session, []sessionModel.Message) {
	return controllerInstance.Snapshot(ctx, sessionId)
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
