package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/checkout"
	"github.com/hookedbylulu/storefront-api/internal/command"
	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/config"
	"github.com/hookedbylulu/storefront-api/internal/contact"
	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/health"
	"github.com/hookedbylulu/storefront-api/internal/lock"
	"github.com/hookedbylulu/storefront-api/internal/notify"
	"github.com/hookedbylulu/storefront-api/internal/obs"
	"github.com/hookedbylulu/storefront-api/internal/order"
	"github.com/hookedbylulu/storefront-api/internal/ratelimit"
	"github.com/hookedbylulu/storefront-api/internal/sched"
	"github.com/hookedbylulu/storefront-api/internal/security"
	"github.com/hookedbylulu/storefront-api/internal/store"
	"github.com/hookedbylulu/storefront-api/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "lulu")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "lulu-storefront",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	scheduler := sched.New()
	defer scheduler.Stop()

	toasts := &notify.Center{Sched: scheduler, TTL: cfg.NotifyTTL}
	eventLog := &events.RedisStore{Client: redisClient}
	bus := &events.Bus{
		Store:     eventLog,
		Notifiers: []events.Notifier{notify.ToastNotifier{Center: toasts}},
	}

	snapshots := &store.Redis{Client: redisClient, TTL: cfg.CartTTL, Logger: logger}
	cartSvc := &cart.Service{Store: snapshots}

	forms, err := checkout.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise form validator")
	}
	fees := checkout.Fees{
		Standard:   cfg.DeliveryStandardFee,
		Express:    cfg.DeliveryExpressFee,
		Nationwide: cfg.DeliveryNationwideFee,
	}

	orderSvc := &order.Service{
		Carts:     cartSvc,
		Forms:     forms,
		Fees:      fees,
		Numbers:   &order.NumberGenerator{Prefix: cfg.OrderPrefix},
		Events:    bus,
		Toasts:    toasts,
		Locks:     &lock.Locker{R: redisClient},
		StoreName: cfg.StoreName,
		Contact:   cfg.WhatsAppNumber,
		Log:       logger,
	}
	contactSvc := contact.NewService(bus, toasts, cfg.StoreName, cfg.WhatsAppNumber, logger)

	cartHandler := &view.Handler{Svc: cartSvc, Toasts: toasts, Events: bus}
	checkoutHandler := &checkout.Handler{Carts: cartSvc, Forms: forms, Fees: fees, Toasts: toasts}
	orderHandler := &order.Handler{Svc: orderSvc}
	contactHandler := &contact.Handler{Svc: contactSvc}
	notifyHandler := &notify.Handler{Center: toasts}
	eventsHandler := &events.Handler{Store: eventLog}
	intentHandler := &command.Handler{Registry: buildRegistry(cartSvc, orderSvc, contactSvc, toasts, bus, fees)}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	limiter := ratelimit.Limiter{Client: redisClient}
	orderLimit := ratelimit.Middleware{Limiter: limiter, Scope: "orders", Window: cfg.RateLimitWindow, Max: cfg.RateLimitMax, Log: logger}
	contactLimit := ratelimit.Middleware{Limiter: limiter, Scope: "contact", Window: cfg.RateLimitWindow, Max: cfg.RateLimitMax, Log: logger}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(recoverer(logger))
	r.Use(security.Headers{
		Enable:                envBool("SECURE_HEADERS_ENABLE", true),
		EnableHSTS:            envBool("SECURE_HSTS_ENABLE", false),
		HSTSIncludeSubdomains: envBool("SECURE_HSTS_INCLUDE_SUBDOMAINS", false),
	}.Middleware)
	r.Use(security.BodyLimit{Max: int64(common.AtoiDefault(envOrDefault("SECURE_MAX_BODY_BYTES", ""), 1<<20))}.Middleware)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{redis: redisClient},
		RedisTimeout: 300 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/carts", func(c chi.Router) {
			c.Post("/", cartHandler.Create)
			c.Route("/{id}", func(one chi.Router) {
				one.Get("/", cartHandler.Get)
				one.Delete("/", cartHandler.Clear)
				one.Post("/items", cartHandler.AddItem)
				one.Delete("/items/{itemId}", cartHandler.RemoveItem)
				one.Post("/quote", checkoutHandler.Quote)
			})
		})

		v.Post("/checkout/validate", checkoutHandler.Validate)
		v.With(idem.Middleware, orderLimit.Wrap).Post("/orders", orderHandler.Place)
		v.With(contactLimit.Wrap).Post("/contact", contactHandler.Send)
		v.Post("/intents", intentHandler.Dispatch)

		v.Route("/notifications/{key}", func(n chi.Router) {
			n.Get("/", notifyHandler.Current)
			n.Delete("/", notifyHandler.Dismiss)
		})

		v.Get("/events", eventsHandler.Recent)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		health.SetReady(false)
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer drainCancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Str("store", cfg.StoreName).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server stopped")
}

// buildRegistry binds every page intent to its service call so the intent
// surface and the REST surface share one implementation.
func buildRegistry(
	carts *cart.Service,
	orders *order.Service,
	contacts *contact.Service,
	toasts *notify.Center,
	bus *events.Bus,
	fees checkout.Fees,
) *command.Registry {
	reg := command.NewRegistry()

	reg.Register(command.IntentAddItem, func(ctx context.Context, req command.Request) (any, error) {
		var payload struct {
			Title string `json:"title"`
			Price string `json:"price"`
		}
		if err := command.Bind(req, &payload); err != nil {
			return nil, err
		}
		c, err := carts.AddItemFromDisplay(ctx, req.Key, payload.Title, payload.Price)
		if err != nil {
			return nil, err
		}
		toasts.Success(req.Key, "Item added to cart!")
		return cartView(c), nil
	})

	reg.Register(command.IntentRemoveItem, func(ctx context.Context, req command.Request) (any, error) {
		var payload struct {
			ItemID int64 `json:"itemId"`
		}
		if err := command.Bind(req, &payload); err != nil {
			return nil, err
		}
		c, err := carts.RemoveItem(ctx, req.Key, payload.ItemID)
		if err != nil {
			return nil, err
		}
		toasts.Info(req.Key, "Item removed from cart")
		return cartView(c), nil
	})

	reg.Register(command.IntentClearCart, func(ctx context.Context, req command.Request) (any, error) {
		c, err := carts.Clear(ctx, req.Key)
		if err != nil {
			return nil, err
		}
		_, _ = bus.Emit(ctx, events.TopicCartCleared, req.Key, nil)
		return cartView(c), nil
	})

	reg.Register(command.IntentSelectDelivery, func(ctx context.Context, req command.Request) (any, error) {
		var payload struct {
			Delivery string `json:"delivery"`
		}
		if err := command.Bind(req, &payload); err != nil {
			return nil, err
		}
		sel, err := fees.Select(payload.Delivery)
		if err != nil {
			return nil, err
		}
		c, err := carts.Get(ctx, req.Key)
		if err != nil {
			return nil, err
		}
		toasts.Success(req.Key, sel.Method.Name()+" selected")
		return map[string]any{
			"selection": sel,
			"pricing":   checkout.Quote(c, sel),
		}, nil
	})

	reg.Register(command.IntentSubmitCheckout, func(ctx context.Context, req command.Request) (any, error) {
		var payload struct {
			Form     checkout.Form `json:"form"`
			Delivery string        `json:"delivery"`
		}
		if err := command.Bind(req, &payload); err != nil {
			return nil, err
		}
		return orders.Place(ctx, order.PlaceInput{CartID: req.Key, Form: payload.Form, Delivery: payload.Delivery})
	})

	reg.Register(command.IntentSendContact, func(ctx context.Context, req command.Request) (any, error) {
		var payload contact.Message
		if err := command.Bind(req, &payload); err != nil {
			return nil, err
		}
		return contacts.Send(ctx, req.Key, payload)
	})

	return reg
}

func cartView(c cart.Cart) map[string]any {
	return map[string]any{
		"cartId": c.ID,
		"items":  c.Items,
		"view":   view.Render(c),
	}
}

// recoverer turns panics into the canonical error envelope so route failures
// never leak stack traces to the page.
func recoverer(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
					common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	redis *redis.Client
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
