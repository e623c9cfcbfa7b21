package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/models"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Middleware func(http.Handler) http.Handler

const (
	RequestIDHeader = "X-Request-Id"

	unauthorizedMessage = "Требуется авторизация"
)

// TokenResolver turns a bearer token into the user it was issued for.
type TokenResolver interface {
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
}

type userContextKey struct{}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user stored by Auth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok && user != nil
}

// Auth rejects the request with 401 unless it carries a valid bearer token.
// Every kind of failure produces the same response.
func Auth(tokens TokenResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, unauthorizedMessage, http.StatusUnauthorized)
				return
			}

			user, err := tokens.GetUserFromToken(r.Context(), tokenString)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("токен отклонён")
				writeError(w, unauthorizedMessage, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// Logging attaches a request-scoped zerolog logger with a request id and writes one access line per request.
func Logging(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return Chain(next,
			hlog.AccessHandler(accessLog),
			hlog.UserAgentHandler("user_agent"),
			hlog.URLHandler("url"),
			hlog.MethodHandler("method"),
			hlog.RemoteAddrHandler("ip"),
			hlog.RequestIDHandler("req_id", RequestIDHeader),
			hlog.NewHandler(logger),
		)
	}
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)

	event := logger.Info()
	switch {
	case status >= http.StatusInternalServerError:
		event = logger.Error()
	case status >= http.StatusBadRequest:
		event = logger.Warn()
	}

	event.Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("запрос обработан")
}

// Recoverer turns a panic into a 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("паника при обработке запроса")
			writeError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// Metrics records request count and latency labelled by the matched route template.
func Metrics(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, _ int, duration time.Duration) {
		route := routeLabel(r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())
	})(next)
}

func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func CORS(allowedOrigins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit allows at most requests per window for each client IP. A non-positive limit disables it.
func RateLimit(requests int, window time.Duration) Middleware {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, "Слишком много запросов, попробуйте позже", http.StatusTooManyRequests)
		}),
	)
}

// Chain wraps h so that the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
