package adapter

import (
	"github.com/asunkara/PDFChatAPI/internal/api"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
)

func ToAskResponse(sessionId string, question string, answer string, matches []docModel.RetrievedMatch) api.AskResponse {
	sources := make([]api.Source, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, api.Source{
			PDFName: m.PDFName,
			Page:    m.PageNum,
			Score:   m.Score,
		})
	}
	return api.AskResponse{
		SessionId: sessionId,
		Question:  question,
		Answer:    answer,
		Sources:   sources,
	}
}

func ToUploadResponse(session sessionModel.Session, note string) api.UploadResponse {
	return api.UploadResponse{
		SessionId:  session.Id,
		DocId:      session.DocId,
		Name:       session.PDFName,
		ChunkCount: session.ChunkCount,
		Note:       note,
	}
}

func ToSessionResponse(session sessionModel.Session, history []sessionModel.Message) api.SessionResponse {
	messages := make([]api.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return api.SessionResponse{
		SessionId:  session.Id,
		DocId:      session.DocId,
		PDFName:    session.PDFName,
		ChunkCount: session.ChunkCount,
		History:    messages,
	}
}

func BadRequest(message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
