// Package lambdahttp serves an http.Handler behind API Gateway HTTP APIs
// (payload format 2.0).
package lambdahttp

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/pfrederiksen/quiz-results/internal/logger"
)

// Adapter wraps an http.Handler for use with lambda.Start
type Adapter struct {
	proxy *httpadapter.HandlerAdapterV2
}

// New creates an Adapter for h
func New(h http.Handler) *Adapter {
	return &Adapter{proxy: httpadapter.NewV2(h)}
}

// Handle serves one API Gateway v2 event
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := a.proxy.ProxyWithContext(ctx, event)
	if err != nil {
		logger.Error("Failed to proxy API Gateway event", logger.Fields{
			"aws_request_id": event.RequestContext.RequestID,
			"route":          event.RouteKey,
		}, err)
	}
	return resp, err
}
