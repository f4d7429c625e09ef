package grpchealth

import (
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"dispatch/pkg/logger"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second
)

// Server отдает grpc.health.v1 для оркестратора: общий статус ("") и статус сервиса по имени.
type Server struct {
	log     logger.Logger
	service string
	grpc    *grpc.Server
	health  *health.Server
}

func New(log serverLogger, service string) *Server {
	srv := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)

	s := &Server{
		log: log.With(
			logger.NewField("component", "grpc-health"),
			logger.NewField("service", service),
		),
		service: service,
		grpc:    srv,
		health:  healthServer,
	}
	s.SetServing(false)

	return s
}

// Serve блокируется до Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("gRPC health server starting", logger.NewField("addr", lis.Addr().String()))

	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("grpc health serve: %w", err)
	}
	return nil
}

func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(s.service, status)
}

// Stop переводит все статусы в NOT_SERVING и дожидается активных вызовов.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	s.log.Info("gRPC health server stopped")
}
