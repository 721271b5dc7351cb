//
//
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wake/snikket-web-portal/internal/adapter"
	"github.com/wake/snikket-web-portal/internal/audit"
	"github.com/wake/snikket-web-portal/internal/auth"
)

// MaxBodyBytes is the largest request body accepted. A body of exactly
// this size is still parsed.
const MaxBodyBytes = 1_000_000

// Route paths.
const (
	PathList           = "/muc/list"
	PathGetAffiliation = "/muc/get-affiliation"
	PathSetAffiliation = "/muc/set-affiliation"
)

var errBodyTooLarge = errors.New("request body exceeds limit")

// route executes one operation from the decoded request fields.
type route struct {
	scope  string
	handle func(s *Server, ctx context.Context, fields map[string]any) (adapter.Result, error)
}

var routes = map[string]route{
	PathList: {
		scope: auth.ScopeRead,
		handle: func(s *Server, ctx context.Context, f map[string]any) (adapter.Result, error) {
			return s.orchestrator.ListRooms(ctx, stringField(f, "muc_domain"))
		},
	},
	PathGetAffiliation: {
		scope: auth.ScopeRead,
		handle: func(s *Server, ctx context.Context, f map[string]any) (adapter.Result, error) {
			return s.orchestrator.GetAffiliation(ctx, stringField(f, "room"), stringField(f, "user"))
		},
	},
	PathSetAffiliation: {
		scope: auth.ScopeWrite,
		handle: func(s *Server, ctx context.Context, f map[string]any) (adapter.Result, error) {
			return s.orchestrator.SetAffiliation(ctx, stringField(f, "room"), stringField(f, "user"), stringField(f, "affiliation"))
		},
	},
}

// Handler returns the complete request pipeline.
func (s *Server) Handler() http.Handler {
	var next http.HandlerFunc = s.dispatch
	if s.authMiddleware != nil {
		next = s.authMiddleware.RequireAuth(scopeForPath, next)
	}
	return s.withCorrelation(s.withRecover(s.requirePost(next)))
}

// scopeForPath returns the scope a route needs. Unknown paths only need a
// valid token so that they still answer 404.
func scopeForPath(r *http.Request) string {
	if rt, ok := routes[r.URL.Path]; ok {
		return rt.scope
	}
	return ""
}

func (s *Server) requirePost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.respond(r, WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed))
			return
		}
		next(w, r)
	}
}

// dispatch reads, parses, routes and executes one request.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.logger.Warn("aborting request body",
			zap.String("path", r.URL.Path),
			zap.Int64("content_length", r.ContentLength),
			zap.Error(err))
		panic(http.ErrAbortHandler)
	}

	fields, err := parseFields(body)
	if err != nil {
		s.respond(r, WriteErr(w, err))
		return
	}

	rt, ok := routes[r.URL.Path]
	if !ok {
		s.respond(r, WriteErr(w, ErrNotFound))
		return
	}

	ctx := r.Context()
	if claims := auth.ClaimsFromContext(ctx); claims != nil {
		ctx = audit.WithActor(ctx, claims.Subject)
	}

	result, err := rt.handle(s, ctx, fields)
	if err != nil {
		s.respond(r, WriteErr(w, err))
		return
	}
	s.respond(r, WriteSuccess(w, result.Stdout))
}

// readBody reads at most MaxBodyBytes. A declared or actual body above the
// limit, or a broken read, is reported as an error.
func readBody(r *http.Request) ([]byte, error) {
	if r.ContentLength > MaxBodyBytes {
		return nil, errBodyTooLarge
	}
	if r.Body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBodyBytes {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// parseFields decodes body. An empty body is an empty object, and a JSON
// document that is not an object has no fields.
func parseFields(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, ErrInvalidJSON
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return fields, nil
}

// stringField returns the named field when it is a JSON string. Missing
// and non-string values become "", which no validator accepts.
func stringField(fields map[string]any, name string) string {
	v, _ := fields[name].(string)
	return v
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// withCorrelation tags the response with a correlation id and writes one
// access log line per request. A request whose connection is dropped is
// logged with status 0 and aborted set.
func (s *Server) withCorrelation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(CorrelationHeader, id)

		rec := &statusRecorder{ResponseWriter: w}
		completed := false
		defer func() {
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("latency", time.Since(start)),
				zap.String("correlation_id", id),
			}
			if !completed {
				fields = append(fields, zap.Bool("aborted", true))
			}
			s.logger.Info("request", fields...)
		}()

		next.ServeHTTP(rec, r)
		completed = true
	})
}

// withRecover converts handler panics into a 500 JSON response. Aborts
// are passed through so the server drops the connection.
func (s *Server) withRecover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("panic in handler",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path))
			s.respond(r, WriteError(w, http.StatusInternalServerError, MsgInternalServerError))
		}()
		next(w, r)
	}
}
