package api

import (
	"net/http"

	"freight-matching-service/internal/api/handlers"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.OrderRepository,
	oracle *services.DistanceOracle,
	matcher *services.Matcher,
	batch *services.BatchMatcher,
) http.Handler {
	mux := http.NewServeMux()

	distHandler := &handlers.DistanceHandler{Oracle: oracle}
	matchHandler := &handlers.MatchHandler{
		Repo:    repo,
		Matcher: matcher,
		Batch:   batch,
	}
	orderHandler := &handlers.OrderHandler{Pool: batch.Pool()}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distances", distHandler.Pair)
	mux.HandleFunc("/routes/distance", distHandler.Route)
	mux.HandleFunc("/matches/evaluate", matchHandler.Evaluate)
	mux.HandleFunc("/matches/batch", matchHandler.BatchMatch)
	mux.HandleFunc("/orders/pending", orderHandler.Pending)

	return requestIDMiddleware(loggingMiddleware(mux))
}
