package server

import (
	"fmt"

	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	handlers "github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/prometheus"
	"github.com/NeuralTrust/ComplianceHawk/pkg/middleware"
	"github.com/NeuralTrust/ComplianceHawk/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		MiddlewareTransport *middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	APIServer struct {
		*BaseServer
	}
)

// NewAPIServer builds the fully routed app; Run only starts listening, so
// tests can drive Router directly.
func NewAPIServer(di APIServerDI) *APIServer {
	prometheus.Initialize(prometheus.MetricsConfig{Enabled: di.Config.Metrics.Enabled})

	s := &APIServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}

	if mws := di.MiddlewareTransport.GetMiddlewares(); len(mws) > 0 {
		s.Router.Use(mws...)
	}
	s.setupHealthCheck()
	s.WithRouters(router.NewAPIRouter(di.HandlerTransport, di.Config))

	return s
}

func (s *APIServer) Run() error {
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting compliance hawk api server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	return s.shutdown()
}
