package router

import (
	"donmario/internal/handlers/auth"
	"donmario/internal/handlers/chat"
	"donmario/internal/handlers/reservation"
	"donmario/internal/handlers/table"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Table       table.Handler
	Reservation reservation.Handler
	Chat        chat.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})

	router.Route("/ws", func(routerGroup chi.Router) {
		r.DomainHandlers.Chat.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
