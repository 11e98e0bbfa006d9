package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/verdantlabs/sunfield/internal/log"
	"github.com/verdantlabs/sunfield/pkg/config"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/slope"
	"github.com/verdantlabs/sunfield/pkg/sunhours"
)

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	httpConfig     config.HTTPData
	Server         http.Server
	Site           config.SiteData
	Obstacles      []shade.Obstacle
	Sampling       sunhours.SamplingConfig
	GridConfig     config.GridData
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, hc config.HTTPData, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		httpConfig:     hc,
		logger:         logger,
	}

	// Load configuration
	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	ctrl.Site = cfgData.Site
	ctrl.GridConfig = cfgData.Grid

	ctrl.Obstacles, err = cfgData.ObstacleList()
	if err != nil {
		return nil, fmt.Errorf("error loading obstacles: %v", err)
	}

	ctrl.Sampling = sunhours.DefaultSampling()
	if m := cfgData.Sampling.IntervalMinutes; m > 0 {
		ctrl.Sampling.Interval = minuteDuration(m)
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if hc.ListenAddr == "" {
		logger.Info("http.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		hc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if hc.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		hc.Port = 8080
	}
	ctrl.httpConfig = hc

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", hc.ListenAddr, hc.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.httpConfig.Cert != "" && c.httpConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.httpConfig.Cert, c.httpConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/position", c.handlers.GetPosition).Methods("GET")
	router.HandleFunc("/suntimes", c.handlers.GetSunTimes).Methods("GET")
	router.HandleFunc("/daily", c.handlers.GetDaily).Methods("GET")
	router.HandleFunc("/analysis", c.handlers.GetAnalysis).Methods("GET")
	router.HandleFunc("/seasonal", c.handlers.GetSeasonal).Methods("GET")
	router.HandleFunc("/shadows", c.handlers.GetShadows).Methods("GET")
	router.HandleFunc("/exposure", c.handlers.PostExposure).Methods("POST")
	router.HandleFunc("/health", c.handlers.GetHealth).Methods("GET")

	var handler http.Handler = router
	handler = handlers.CompressHandler(handler)
	if c.httpConfig.EnableCORS {
		handler = handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}
	return handler
}

// siteSlope returns the configured terrain tilt, or nil when the site is
// effectively flat.
func (c *Controller) siteSlope() *slope.Slope {
	s := c.Site.Slope()
	if s.AngleDeg <= 0 {
		return nil
	}
	return &s
}
