package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"scorekeeper/internal/auth"
	coursedomain "scorekeeper/internal/domain/course"
	layoutdomain "scorekeeper/internal/domain/layout"
	scorecarddomain "scorekeeper/internal/domain/scorecard"
	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/pkg/logger"
)

type Handlers struct {
	Courses    *coursedomain.Service
	Layouts    *layoutdomain.Service
	Users      *userdomain.Service
	ScoreCards *scorecarddomain.Service
	Tokens     auth.TokenService

	secureCookies bool
	validator     *validator.Validate
	log           logger.Logger
}

func New(
	courses *coursedomain.Service,
	layouts *layoutdomain.Service,
	users *userdomain.Service,
	scoreCards *scorecarddomain.Service,
	tokens auth.TokenService,
	secureCookies bool,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Courses:       courses,
		Layouts:       layouts,
		Users:         users,
		ScoreCards:    scoreCards,
		Tokens:        tokens,
		secureCookies: secureCookies,
		validator:     newValidator(),
		log:           log,
	}
}

// logger returns the request-scoped logger set by the request logging
// middleware, falling back to the handler logger.
func (h *Handlers) logger(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), h.log)
}
