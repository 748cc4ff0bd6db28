package controllers

import (
	"net/http"

	"github.com/carmodifyx/modifyx-backend/api/middleware"
	"github.com/carmodifyx/modifyx-backend/api/responses"
	buildersvc "github.com/carmodifyx/modifyx-backend/internal/builder"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
)

// GenerateBuildImage renders an AI preview of the current builder
// session and stores the URL on the session.
func GenerateBuildImage(svc buildersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		session, err := svc.GeneratePreview(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}
