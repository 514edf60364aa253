package v1

import (
	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

// Handlers groups everything mounted under /api/v1. Nil handlers are
// skipped.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Profile  *handler.ProfileHandler
	Match    *handler.MatchHandler
	Gap      *handler.GapHandler
	Attempt  *handler.AttemptHandler
	Report   *handler.ReportHandler
	Realtime routeRegistrar
}

func Register(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil || auth == nil {
		return
	}

	protected := r.Group("", auth.Middleware())

	for _, reg := range h.registrars() {
		reg.RegisterRoutes(protected)
	}
}

func (h Handlers) registrars() []routeRegistrar {
	out := make([]routeRegistrar, 0, 7)
	if h.Catalog != nil {
		out = append(out, h.Catalog)
	}
	if h.Profile != nil {
		out = append(out, h.Profile)
	}
	if h.Match != nil {
		out = append(out, h.Match)
	}
	if h.Gap != nil {
		out = append(out, h.Gap)
	}
	if h.Attempt != nil {
		out = append(out, h.Attempt)
	}
	if h.Report != nil {
		out = append(out, h.Report)
	}
	if h.Realtime != nil {
		out = append(out, h.Realtime)
	}
	return out
}
