package service

import (
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	"github.com/mmynk/chitwiser/internal/auth"
	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/metrics"
	"github.com/mmynk/chitwiser/internal/middleware"
	"github.com/mmynk/chitwiser/pkg/api"
)

// Deps are the collaborators the RPC services are built from.
type Deps struct {
	Engine        *engine.Engine
	Authenticator auth.Authenticator
	Directory     *auth.Directory
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// Mount registers every Connect service on r. AuthService accepts anonymous
// callers for Register and Login; every other service requires a token.
func Mount(r chi.Router, d Deps) {
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.Metrics),
		middleware.OptionalAuth(d.JWT),
		middleware.LoggingInterceptor(d.Logger),
	)
	private := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.Metrics),
		middleware.RequireAuth(d.JWT),
		middleware.LoggingInterceptor(d.Logger),
	)

	r.Mount(api.NewAuthServiceHandler(NewAuthService(d.Authenticator, d.Directory, d.JWT, d.Logger), public))
	r.Mount(api.NewGroupServiceHandler(NewGroupService(d.Engine, d.Logger), private))
	r.Mount(api.NewLedgerServiceHandler(NewLedgerService(d.Engine, d.Logger), private))
	r.Mount(api.NewBiddingServiceHandler(NewBiddingService(d.Engine, d.Logger), private))
	r.Mount(api.NewReportServiceHandler(NewReportService(d.Engine, d.Logger), private))
}
