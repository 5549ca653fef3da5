package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/adapter"
	"github.com/asunkara/PDFChatAPI/internal/api"
	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// UploadDocumentHandler godoc
// @Summary      Upload a document
// @Description  Receives a PDF (or DOCX/TXT/RTF) via multipart/form-data, extracts and indexes it synchronously, and makes it the session's active document. Any previous document of the session is replaced.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document       formData  file    true   "The file to index"
// @Param        document_name  formData  string  false  "Display name used in citations; defaults to the uploaded filename"
// @Param        X-Session-Id   header    string  false  "Session identifier; generated when absent"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "Bad upload or unsupported type"
// @Failure      502  {object}  api.ErrorResponse "Extraction or indexing failure"
// @Router       /documents [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	sessionId := sessionIdOf(r, w)

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSizeBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	docName := r.FormValue("document_name")
	if docName == "" {
		docName = fileMetadata.Filename
	}

	tempFilePath := filepath.Join(targetDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename)))
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	defer os.Remove(tempFilePath)
	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		destinationFileWriter.Close()
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}
	destinationFileWriter.Close()

	ctx, cancel := requestContext(r, config.IngestTimeout)
	defer cancel()

	session, note, err := controllerInstance.HandleUpload(ctx, sessionId, docName, tempFilePath)
	if err != nil {
		if errors.Is(err, ErrUnsupportedDocument) {
			WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		logRH.Error("Upload failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "Could not index the document")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(session, note))
}

// AskHandler godoc
// @Summary      Ask a question about the active document
// @Description  Embeds the question, retrieves the most similar chunks of the session's document, and returns an answer grounded strictly in that context.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request       body    api.AskRequest  true  "The question"
// @Param        X-Session-Id  header  string          false "Session identifier; generated when absent"
// @Success      200  {object}  api.AskResponse
// @Failure      400  {object}  api.ErrorResponse "Missing question"
// @Failure      409  {object}  api.ErrorResponse "No document uploaded yet"
// @Failure      502  {object}  api.ErrorResponse "Model or store failure"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	sessionId := sessionIdOf(r, w)

	var requestData api.AskRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the Ask handler reader :", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Question) == "" {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx, cancel := requestContext(r, config.QuestionTimeout)
	defer cancel()

	answer, err := controllerInstance.HandleAsk(ctx, sessionId, requestData.Question)
	if err != nil {
		if errors.Is(err, ErrNoActiveDocument) {
			WriteErrorResponse(w, http.StatusConflict, "Upload a document first")
			return
		}
		logRH.Error("Ask failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "Could not answer the question")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(sessionId, requestData.Question, answer.Text, answer.Sources))
}

// ResetHandler godoc
// @Summary      Reset the session
// @Description  Deletes the indexed chunks of the active document (best effort) and clears the conversation history.
// @Tags         Chat
// @Produce      json
// @Param        X-Session-Id  header  string  false  "Session identifier"
// @Success      200  {object}  api.SessionResponse
// @Router       /reset [post]
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	sessionId := sessionIdOf(r, w)

	ctx, cancel := requestContext(r, config.QuestionTimeout)
	defer cancel()

	if err := controllerInstance.HandleReset(ctx, sessionId); err != nil {
		logRH.Error("Reset failed", "error", err)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(sessionModelSnapshot(ctx, sessionId)))
}

// GetSessionHandler godoc
// @Summary      Get session state
// @Description  Returns the active document metadata and the conversation history of the session.
// @Tags         Chat
// @Produce      json
// @Param        X-Session-Id  header  string  false  "Session identifier"
// @Success      200  {object}  api.SessionResponse
// @Router       /session [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	sessionId := sessionIdOf(r, w)

	ctx, cancel := requestContext(r, config.QuestionTimeout)
	defer cancel()

	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(sessionModelSnapshot(ctx, sessionId)))
}
