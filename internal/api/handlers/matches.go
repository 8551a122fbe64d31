package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"freight-matching-service/internal/api/dto"
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

// MatchHandler exposes order/route matching over HTTP.
type MatchHandler struct {
	Repo    ports.OrderRepository
	Matcher *services.Matcher
	Batch   *services.BatchMatcher
}

// Evaluate matches one order against one stored route and its truck.
func (h *MatchHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EvaluateMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	routeID := strings.TrimSpace(req.RouteID)
	if routeID == "" {
		writeError(w, r, http.StatusBadRequest, "route_id is required")
		return
	}

	order, err := orderFromPayload(req.Order)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	route, truck, err := h.lookupRoute(r, routeID)
	if err != nil {
		log.Printf("route lookup failed: route=%s err=%v", routeID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if route == nil {
		writeError(w, r, http.StatusNotFound, "unknown route")
		return
	}
	if truck == nil {
		writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("route %q references unknown truck %q", route.ID, route.TruckID))
		return
	}

	decision, err := h.Matcher.Evaluate(r.Context(), order, *route, truck)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, decisionResponse(decision))
}

// BatchMatch matches a batch of orders against every stored route and
// aggregates the leftovers into new-route proposals. With no orders in
// the request body, the stored orders are matched instead.
func (h *MatchHandler) BatchMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var orders []domain.Order
	if len(req.Orders) == 0 {
		stored, err := h.Repo.ListOrders(r.Context())
		if err != nil {
			log.Printf("list orders failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		orders = stored
	} else {
		orders = make([]domain.Order, 0, len(req.Orders))
		for i, p := range req.Orders {
			o, err := orderFromPayload(p)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, fmt.Sprintf("orders[%d]: %v", i, err))
				return
			}
			orders = append(orders, o)
		}
	}

	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	trucks, err := h.Repo.ListTrucks(r.Context())
	if err != nil {
		log.Printf("list trucks failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := h.Batch.MatchBatch(r.Context(), orders, routes, trucks)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.BatchMatchResponse{
		Decisions: make([]dto.BatchDecisionPayload, 0, len(result.Decisions)),
		Matched:   result.Matched,
		Pooled:    result.Pooled,
	}
	for _, d := range result.Decisions {
		p := dto.BatchDecisionPayload{OrderID: d.OrderID, Pooled: d.Pooled}
		if d.Decision != nil {
			dec := decisionResponse(d.Decision)
			p.Decision = &dec
		}
		res.Decisions = append(res.Decisions, p)
	}
	for _, prop := range result.Proposals {
		res.Proposals = append(res.Proposals, proposalPayload(prop))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// lookupRoute finds a stored route and its truck by route id. A nil
// route means the id is unknown; a nil truck means the route references
// a truck the fleet does not have.
func (h *MatchHandler) lookupRoute(r *http.Request, routeID string) (*domain.Route, *domain.Truck, error) {
	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("list routes: %w", err)
	}

	var route *domain.Route
	for i := range routes {
		if routes[i].ID == routeID {
			route = &routes[i]
			break
		}
	}
	if route == nil {
		return nil, nil, nil
	}

	trucks, err := h.Repo.ListTrucks(r.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("list trucks: %w", err)
	}
	for _, t := range trucks {
		if t != nil && t.ID == route.TruckID {
			return route, t, nil
		}
	}

	return route, nil, nil
}

func orderFromPayload(p dto.OrderPayload) (domain.Order, error) {
	id := strings.TrimSpace(p.OrderID)
	if id == "" {
		return domain.Order{}, fmt.Errorf("order_id is required")
	}
	if len(p.Cargo) == 0 {
		return domain.Order{}, fmt.Errorf("order %q: cargo is required", id)
	}

	cargo := make([]domain.Cargo, 0, len(p.Cargo))
	for i, c := range p.Cargo {
		typ, err := domain.ParseCargoType(c.Type)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order %q: cargo[%d]: %v", id, i, err)
		}
		if c.VolumeM3 <= 0 || c.WeightLbs <= 0 {
			return domain.Order{}, fmt.Errorf("order %q: cargo[%d]: volume and weight must be positive", id, i)
		}
		cargo = append(cargo, domain.Cargo{
			VolumeM3:  c.VolumeM3,
			WeightLbs: c.WeightLbs,
			Type:      typ,
		})
	}

	return domain.Order{
		ID:      id,
		Pickup:  domain.Coordinate{Lat: p.Pickup.Lat, Lon: p.Pickup.Lon},
		Dropoff: domain.Coordinate{Lat: p.Dropoff.Lat, Lon: p.Dropoff.Lon},
		Cargo:   cargo,
		Revenue: p.Revenue,
	}, nil
}

func payloadFromOrder(o domain.Order) dto.OrderPayload {
	cargo := make([]dto.CargoPayload, 0, len(o.Cargo))
	for _, c := range o.Cargo {
		cargo = append(cargo, dto.CargoPayload{
			VolumeM3:  c.VolumeM3,
			WeightLbs: c.WeightLbs,
			Type:      string(c.Type),
		})
	}

	return dto.OrderPayload{
		OrderID: o.ID,
		Pickup:  dto.PointPayload{Lat: o.Pickup.Lat, Lon: o.Pickup.Lon},
		Dropoff: dto.PointPayload{Lat: o.Dropoff.Lat, Lon: o.Dropoff.Lon},
		Cargo:   cargo,
		Revenue: o.Revenue,
	}
}

func decisionResponse(d *domain.MatchDecision) dto.MatchDecisionResponse {
	res := dto.MatchDecisionResponse{
		OrderID:            d.OrderID,
		RouteID:            d.RouteID,
		State:              string(d.State),
		Accepted:           d.Accepted,
		ProfitabilityDelta: d.ProfitabilityDelta,
	}
	for _, v := range d.Violations {
		res.Violations = append(res.Violations, dto.ViolationPayload{
			Kind:          string(v.Kind),
			RequiredLimit: v.RequiredLimit,
			ActualValue:   v.ActualValue,
			Severity:      string(v.Severity),
		})
	}
	return res
}

func proposalPayload(p services.RouteProposal) dto.RouteProposalPayload {
	stops := make([]dto.WaypointPayload, 0, len(p.Path))
	for _, wp := range p.Path {
		stops = append(stops, dto.WaypointPayload{ID: wp.ID, Lat: wp.Lat, Lon: wp.Lon})
	}

	return dto.RouteProposalPayload{
		OrderIDs:       p.OrderIDs,
		Stops:          stops,
		DistanceKm:     p.DistanceKm,
		DriveTimeHours: p.DriveTimeHours,
		Method:         string(p.Method),
		CostUSD:        p.CostUSD,
		RevenueUSD:     p.RevenueUSD,
		Delta:          p.Delta,
		Score:          p.Score,
	}
}
