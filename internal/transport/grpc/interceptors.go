package grpc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by RequestIDInterceptor.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(requestIDHeader)
	if len(values) == 0 {
		return ""
	}
	id := strings.TrimSpace(values[0])
	if len(id) > 128 {
		return ""
	}
	return id
}

// RequestIDInterceptor tags every call with a request id, taken from the
// x-request-id header or generated, echoes it back in the response header and
// logs the call outcome.
func RequestIDInterceptor(log *slog.Logger) grpclib.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "grpc"))

	return func(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
		id := incomingRequestID(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		ctx = context.WithValue(ctx, requestIDKey{}, id)
		_ = grpclib.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

		started := time.Now()
		resp, err := handler(ctx, req)

		log.Debug("rpc finished",
			slog.String("method", info.FullMethod),
			slog.String("request_id", id),
			slog.String("code", status.Code(err).String()),
			slog.Duration("elapsed", time.Since(started)),
		)
		return resp, err
	}
}

// DefaultRequestTimeoutInterceptor bounds calls that arrive without a deadline.
func DefaultRequestTimeoutInterceptor(timeout time.Duration) grpclib.UnaryServerInterceptor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return func(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return handler(ctx, req)
	}
}
