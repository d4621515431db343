// Package log provides logging with automatic masking of scraping-API
// credentials, built on top of the standard slog package.
//
// Scraped result links and configuration values routinely embed the API key
// of the upstream scraping service as a query parameter. Those values flow
// through almost every log statement in the ingestion path, so the handler
// masks them centrally instead of relying on each call site to remember.
//
// The MaskingHandler:
//   - Replaces values of credential-named attribute keys (api_key, token,
//     secret, ...) entirely
//   - Redacts credential-bearing query parameters inside URL-valued
//     attributes while keeping the rest of the URL readable
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("fetched page",
//	    "url", "https://serpapi.com/search?q=x&api_key=abc123", // key is masked
//	)
//	slog.SetDefault(logger)
package log
