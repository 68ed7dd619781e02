package pickup

import (
	"context"
	"sort"

	domainPickup "wastemanage/internal/domain/pickup"
)

// Per-stop multipliers for the route summary. These are fixed estimates, not
// derived from coordinates.
const (
	routeKmPerStop  = 2
	routeMinPerStop = 15
)

const routeDateLayout = "2006-01-02"

// RoutePlan buckets every scheduled request by preferred pickup date and
// orders each day's stops morning → afternoon → evening.
func (s *Service) RoutePlan(ctx context.Context) ([]*DailyRoute, error) {
	status := domainPickup.StatusScheduled
	requests, err := s.pickupRepo.List(ctx, &domainPickup.Filter{Status: &status})
	if err != nil {
		return nil, err
	}

	return buildRoutePlan(requests), nil
}

func buildRoutePlan(requests []*domainPickup.PickupRequest) []*DailyRoute {
	buckets := make(map[string][]*domainPickup.PickupRequest)
	for _, req := range requests {
		date := req.PreferredDate.Format(routeDateLayout)
		buckets[date] = append(buckets[date], req)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	routes := make([]*DailyRoute, 0, len(dates))
	for _, date := range dates {
		dayRequests := buckets[date]
		sort.SliceStable(dayRequests, func(i, j int) bool {
			return domainPickup.SlotOrder(dayRequests[i].PreferredTimeSlot) <
				domainPickup.SlotOrder(dayRequests[j].PreferredTimeSlot)
		})

		var totalWeight float64
		for _, req := range dayRequests {
			totalWeight += req.EstimatedWeight
		}

		stops := len(dayRequests)
		routes = append(routes, &DailyRoute{
			Date:                date,
			Stops:               toPickupResponses(dayRequests),
			TotalStops:          stops,
			TotalWeight:         totalWeight,
			EstimatedDistanceKm: stops * routeKmPerStop,
			EstimatedTimeMin:    stops * routeMinPerStop,
		})
	}

	return routes
}
