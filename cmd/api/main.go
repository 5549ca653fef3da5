// @title           PDF Chat API
// @version         1.0
// @description     Upload a PDF and ask questions answered strictly from its content
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/data/store"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
	"github.com/asunkara/PDFChatAPI/internal/handlers"
	"github.com/asunkara/PDFChatAPI/internal/rag"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding/googleEmbedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/llm"
	"github.com/asunkara/PDFChatAPI/internal/rag/llm/gemini"
	"github.com/asunkara/PDFChatAPI/internal/rag/llm/openaiChat"
	"github.com/asunkara/PDFChatAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/asunkara/PDFChatAPI/internal/server"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//session store; Redis keeps sessions across restarts, memory is the
	//local-dev fallback
	var sessions sessionModel.SessionStore
	if redisStore := store.GetRedisSessionStore(serviceContext); redisStore != nil {
		sessions = redisStore
	} else {
		logger.Error("Redis store is offline, sessions will not survive a restart")
		sessions = store.InitInMemorySessionStore()
	}

	vectorDB := qdrantDB.GetQdrantClient(serviceContext)

	var embeddingService embedding.Embedder
	var llmProvider llm.Provider
	switch config.ModelProvider() {
	case config.ProviderOpenAI:
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey())
		llmProvider = openaiChat.GetOpenAIChatClient(config.OpenAIChatModel, config.OpenAIAPIKey())
	default:
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey())
		llmProvider = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())
	}

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil, "provider", config.ModelProvider())
		return
	}

	ragService, err := rag.NewService(vectorDB, llmProvider, embeddingService)
	if err != nil {
		logger.Error("Invalid service configuration", "error", err)
		return
	}

	handlers.InitSessionController(ragService, sessions)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
