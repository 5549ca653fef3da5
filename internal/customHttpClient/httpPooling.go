package customHttpClient

import (
	"net/http"

	"github.com/asunkara/PDFChatAPI/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: pooledTransport}

// Pooled returns the shared keep-alive client handed to REST-based model
// providers, so repeated embedding and completion calls reuse connections.
func Pooled() *http.Client {
	return pooledClient
}
