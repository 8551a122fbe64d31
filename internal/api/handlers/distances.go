package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"freight-matching-service/internal/api/dto"
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/services"
)

// DistanceHandler exposes the distance oracle over HTTP.
type DistanceHandler struct {
	Oracle *services.DistanceOracle
}

// Pair resolves the distance and drive time between two coordinates.
func (h *DistanceHandler) Pair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	from := domain.Coordinate{Lat: req.From.Lat, Lon: req.From.Lon}
	to := domain.Coordinate{Lat: req.To.Lat, Lon: req.To.Lon}

	res, err := h.Oracle.CalculateDistance(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceKm:      res.DistanceKm,
		DriveTimeHours:  res.DriveTimeHours,
		Method:          string(res.Method),
		UsedRoadNetwork: res.UsedRoadNetwork,
		DiagnosticNote:  res.DiagnosticNote,
	})
}

// Route prices a multi-waypoint route, optionally reordering the
// intermediate stops and rejecting implausibly long segments.
func (h *DistanceHandler) Route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteDistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	waypoints := make([]domain.Waypoint, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		waypoints = append(waypoints, domain.Waypoint{
			ID:         wp.ID,
			Coordinate: domain.Coordinate{Lat: wp.Lat, Lon: wp.Lon},
		})
	}

	if req.OptimizeOrder {
		waypoints = services.OptimizeWaypointOrder(waypoints)
	}

	var (
		res domain.RouteResult
		err error
	)
	if req.MaxSegmentKm > 0 {
		res, err = h.Oracle.CalculateRouteDistanceWithValidation(r.Context(), waypoints, req.MaxSegmentKm)
	} else {
		res, err = h.Oracle.CalculateRouteDistance(r.Context(), waypoints, false)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	order := make([]string, 0, len(waypoints))
	for _, wp := range waypoints {
		order = append(order, wp.ID)
	}

	writeJSON(w, r, http.StatusOK, dto.RouteDistanceResponse{
		TotalDistanceKm:    res.TotalDistanceKm,
		TotalTimeHours:     res.TotalTimeHours,
		SegmentDistancesKm: res.SegmentDistancesKm,
		Method:             string(res.Method),
		StopOrder:          order,
	})
}

// decodeBody decodes a single JSON object into v, rejecting unknown
// fields and trailing content. It writes the error response itself and
// reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
