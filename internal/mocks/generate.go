package mocks

// Mock generation directives. Regenerate with `go generate ./internal/mocks/`.

//go:generate go run go.uber.org/mock/mockgen -source=../core/cache.go -destination=mock_cache.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/metrics.go -destination=mock_metrics.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/store.go -destination=mock_store.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/catalog.go -destination=mock_catalog.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/events.go -destination=mock_events.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/oauth.go -destination=mock_oauth.go -package=mocks
