package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	SESSION_ID_HEADER           = "X-Session-Id"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking - Overlap must stay strictly below ChunkSize or the splitter constructor rejects it
	ChunkSize     = 1200
	ChunkOverlap  = 200
	MinChunkChars = 40

	//retrieval
	TopKResults     = 8
	MinTopK         = 1
	MaxTopK         = 15
	MaxContextChars = 9000

	//answers
	FallbackAnswer = "No response."
	NoAnswerPhrase = "I don't know based on the PDF."

	//embeddings - both providers are pinned to the same dimensionality so
	//query vectors stay comparable with indexed vectors
	EmbeddingOutputDimensionality int32 = 768
	ChunkCollectionName                 = "pdf_chunks"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //uploads index synchronously before responding
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//per-operation deadlines
	IngestTimeout   = 120 * time.Second
	QuestionTimeout = 60 * time.Second
	PageExtractTime = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//upload
	MaxUploadSizeBytes = 32 << 20

	//vectorDB
	QdrantHost             = ""
	QdrantPort             = 6333 //http
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false //set for https
	QdrantPoolSize         = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout = 30 * time.Second

	//model providers
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	OpenAIChatModel      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisSessionStore = 0

	RedisSessionTTL = 24 * time.Hour
)

// env-driven settings; the constants above are fixed by design, these depend
// on where the service runs
func GoogleAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// ModelProvider selects which embedding+generation pair serves requests.
// Defaults to Google. A document is always indexed and queried through the
// same provider because vectors from different models are not comparable.
func ModelProvider() string {
	if p := os.Getenv("MODEL_PROVIDER"); p == ProviderOpenAI {
		return ProviderOpenAI
	}
	return ProviderGoogle
}

func AuthToken() string {
	return os.Getenv("AUTH_TOKEN")
}

// NoAuthBypass reports whether bearer auth is disabled. Auth is off only when
// no token is configured, which is the local-dev setup.
func NoAuthBypass() bool {
	return AuthToken() == ""
}

func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}
