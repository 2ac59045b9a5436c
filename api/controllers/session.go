package controllers

import (
	"net/http"

	"github.com/gamevault/storefront-backend/api/middleware"
	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/internal/storefront"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

// openSession loads the visitor session for the request, writing the error
// response itself when that fails.
func openSession(w http.ResponseWriter, r *http.Request, mgr *storefront.Manager, logg *logger.Logger) (*storefront.Session, bool) {
	ctx := r.Context()
	if mgr == nil {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
		return nil, false
	}
	sess, err := mgr.Open(ctx, middleware.SessionIDFromContext(ctx))
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return nil, false
	}
	return sess, true
}
