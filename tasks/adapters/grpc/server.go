package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

// ServiceName is the health-check name of the tasks service.
const ServiceName = "tasks"

// Server answers grpc.health.v1 checks from the storage ping.
type Server struct {
	healthpb.UnimplementedHealthServer

	log    *slog.Logger
	pinger core.Pinger
}

func NewServer(log *slog.Logger, pinger core.Pinger) *Server {
	return &Server{log: log, pinger: pinger}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if err := s.pinger.Ping(ctx); err != nil {
		s.log.Error("ping failed", "error", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
