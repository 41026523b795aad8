package router

import (
	"roost/internal/handlers/booking"
	"roost/internal/handlers/experience"
	"roost/internal/handlers/room"
	"roost/internal/handlers/tag"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Tag        tag.Handler
	Room       room.Handler
	Experience experience.Handler
	Booking    booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Tag.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Experience.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
