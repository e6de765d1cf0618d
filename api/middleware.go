package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/google/uuid"
	middleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIdHeader    = "X-Request-Id"
	requestIdAttribute = "http.request.id"
)

type middlewareFunc func(next http.Handler) http.Handler

func useMiddlewares(r *http.ServeMux, middlewares ...middlewareFunc) http.Handler {
	var s http.Handler
	s = r

	for _, mw := range middlewares {
		s = mw(s)
	}

	return s
}

// Handler builds the routed, validated and instrumented HTTP handler.
func (a *API) Handler() (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	swagger.Servers = nil

	strictHandler := NewStrictHandlerWithOptions(a, []StrictMiddlewareFunc{}, StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  a.requestErrorHandler,
		ResponseErrorHandlerFunc: a.responseErrorHandler,
	})

	r := http.NewServeMux()

	HandlerFromMux(strictHandler, r)

	return useMiddlewares(
		r,
		a.openapiValidateMiddleware(swagger),
		a.loggingMiddleware(),
		a.requestContextMiddleware(),
		a.corsMiddleware(),
		a.tracingMiddleware(),
	), nil
}

func (a *API) requestContextMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := uuid.New()
			if fromHeader, err := uuid.Parse(r.Header.Get(requestIdHeader)); err == nil {
				requestId = fromHeader
			}
			w.Header().Set(requestIdHeader, requestId.String())

			ctx := ctxWithRequestId(r.Context(), requestId)
			ctx = ctxWithLogger(ctx, a.logger.With(slog.String("request-id", requestId.String())))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *API) loggingMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			loggingRW := newLoggingResponseWriter(w)

			// process the request
			next.ServeHTTP(loggingRW, r)

			if requestId, ok := getRequestIdFromCtx(r.Context()); ok {
				trace.SpanFromContext(r.Context()).SetAttributes(attribute.String(requestIdAttribute, requestId.String()))
			}

			a.getLoggerOrBaseLogger(r.Context()).InfoContext(r.Context(),
				"Access log",
				slog.String("latency", formatDuration(time.Since(start))),
				slog.Int64("request-content-length", r.ContentLength),
				slog.Int("resp-body-size", loggingRW.responseSize),
				slog.String("host", r.Host),
				slog.String("method", r.Method),
				slog.Int("status-code", loggingRW.statusCode),
				slog.String("path", r.URL.Path),
			)
		})
	}
}

func (a *API) openapiValidateMiddleware(swagger *openapi3.T) middlewareFunc {
	return middleware.OapiRequestValidatorWithOptions(swagger, &middleware.Options{
		ErrorHandlerWithOpts: func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts middleware.ErrorHandlerOpts) {
			var e Error

			var requestErr *openapi3filter.RequestError
			if errors.As(err, &requestErr) {
				e = Error{
					Message: err.Error(),
					Code:    InputValidationError,
				}
			} else if opts.StatusCode == http.StatusNotFound {
				e = Error{
					Message: "Route not found",
					Code:    NotFound,
				}
			} else {
				e = Error{
					Message: err.Error(),
					Code:    InternalError,
				}
			}

			a.writeError(w, opts.StatusCode, e)
		},
	})
}

func (a *API) corsMiddleware() middlewareFunc {
	var serverCors *cors.Cors

	switch a.env {
	case LOCAL:
		serverCors = cors.AllowAll()
	case PROD:
		serverCors = cors.New(cors.Options{
			AllowedOrigins: []string{a.checkoutSettings.SiteURL},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type", requestIdHeader},
			MaxAge:         300,
		})
	}

	return serverCors.Handler
}

func (a *API) tracingMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		opts := []otelhttp.Option{
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		}
		if a.tracerProvider != nil {
			opts = append(opts, otelhttp.WithTracerProvider(a.tracerProvider))
		}
		return otelhttp.NewHandler(next, "registration-api", opts...)
	}
}

// requestErrorHandler answers bodies that passed validation but could not be decoded.
func (a *API) requestErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	a.writeError(w, http.StatusBadRequest, Error{
		Message: err.Error(),
		Code:    InputValidationError,
	})
}

func (a *API) responseErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	a.getLoggerOrBaseLogger(r.Context()).Error("failed to write response", slog.String("error", err.Error()))

	a.writeError(w, http.StatusInternalServerError, Error{
		Message: "Internal server error",
		Code:    InternalError,
	})
}

func (a *API) writeError(w http.ResponseWriter, statusCode int, e Error) {
	jsonBody, err := json.Marshal(&e)
	if err != nil {
		a.logger.Error("failed to marshal error resp", "error", err)
		jsonBody = []byte("{\"message\": \"input is invalid\", \"code\": \"InputValidationError\"}")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBody)
}

// formatDuration formats a duration to one decimal point.
func formatDuration(d time.Duration) string {
	div := time.Duration(10)
	switch {
	case d > time.Second:
		d = d.Round(time.Second / div)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond / div)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond / div)
	case d > time.Nanosecond:
		d = d.Round(time.Nanosecond / div)
	}
	return d.String()
}
