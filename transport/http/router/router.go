package router

import (
	"chappbooking/internal/handlers/booking"
	"chappbooking/internal/handlers/health"
	"chappbooking/internal/handlers/roomtype"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	RoomType roomtype.Handler
	Booking  booking.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
