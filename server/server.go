package server

import (
	"log"
	"net"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/swayops/portal/config"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/common"
	"github.com/swayops/portal/internal/store"
	"github.com/swayops/portal/internal/tracking"
)

type Server struct {
	Cfg *config.Config
	r   *gin.Engine

	db    *store.Bolt
	Store *store.Store
	API   *api.Client

	LimitSet *common.LimitSet
	resolver *tracking.Resolver
	dialogs  *dialogSet
	ws       *melody.Melody
}

func New(cfg *config.Config, r *gin.Engine) (*Server, error) {
	db, err := store.OpenBolt(cfg.DBPath, cfg.DBName, cfg.Buckets()...)
	if err != nil {
		log.Println("Failed to open db", err)
		return nil, err
	}

	var opts []api.Option
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, api.WithTimeout(d))
	}
	client := api.New(cfg.APIBaseURL, opts...)

	srv := &Server{
		Cfg: cfg,
		r:   r,
		db:  db,
		Store: store.New(db, store.Buckets{
			Referral:    cfg.Bucket.Referral,
			Shortlist:   cfg.Bucket.Shortlist,
			Credentials: cfg.Bucket.Credentials,
		}),
		API:      client,
		LimitSet: common.NewLimitSet(cfg.RateLimit()),
		resolver: tracking.NewResolver(client),
		dialogs:  newDialogSet(),
	}
	srv.ws = newSearchSocket(srv)

	srv.initializeRoutes(r)
	return srv, nil
}

func (srv *Server) initializeRoutes(r *gin.Engine) {
	if len(srv.Cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     srv.Cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}))
	}

	r.Use(profile(srv))

	// Public pages, no credentials
	pub := r.Group("", limit(srv))
	pub.GET("/r/:code", click(srv))

	pub.GET("/respond/:token", getResponse(srv))
	pub.POST("/respond/:token", postResponse(srv))

	pub.GET("/submit", getSubmission(srv))
	pub.GET("/submit/:slug", getSubmission(srv))
	pub.GET("/submit/:slug/:code", getSubmission(srv))
	pub.POST("/submit", postSubmission(srv))
	pub.POST("/submit/:slug", postSubmission(srv))
	pub.POST("/submit/:slug/:code", postSubmission(srv))
	// share links: the code is whichever path segment looks like one
	pub.GET("/s/*path", getSubmission(srv))
	pub.POST("/s/*path", postSubmission(srv))

	// Profile scoped
	v1 := r.Group("/api/v1")
	v1.GET("/referral", getReferral(srv))

	v1.GET("/shortlist", getShortlist(srv))
	v1.PUT("/shortlist", putShortlist(srv))
	v1.DELETE("/shortlist", clearShortlist(srv))
	v1.PUT("/shortlist/:id", addShortlist(srv))
	v1.DELETE("/shortlist/:id", delShortlist(srv))

	v1.GET("/session", getSession(srv))
	v1.PUT("/session", putSession(srv))
	v1.DELETE("/session", delSession(srv))

	// Brand, needs credentials
	b := v1.Group("", brandOnly(srv))
	b.GET("/contracts", listContracts(srv))
	b.POST("/contracts", postContract(srv))
	b.GET("/contracts/:id", getContract(srv))
	b.PUT("/contracts/:id", putContract(srv))
	b.DELETE("/contracts/:id", delContract(srv))
	b.POST("/contracts/:id/send", sendContract(srv))
	b.GET("/contracts/status/:influencerId/:campaignId", contractStatus(srv))

	b.GET("/campaigns", listCampaigns(srv))
	b.GET("/campaigns/:id/contracts", campaignContracts(srv))
	b.GET("/campaigns/:id/tracking-links", campaignLinks(srv))

	b.POST("/tracking-links", generateLink(srv))
	b.GET("/tracking-links/:id", getLink(srv))
	b.PUT("/tracking-links/:id", putLink(srv))
	b.DELETE("/tracking-links/:id", delLink(srv))
	b.PUT("/tracking-links/:id/posts/:postId/status", putPostStatus(srv))
	b.PUT("/tracking-links/:id/posts/:postId/metrics", putPostMetrics(srv))
	b.DELETE("/tracking-links/:id/posts/:postId", delPost(srv))

	b.GET("/influencers", listInfluencers(srv))
	b.GET("/influencers/:id/campaigns", campaignDialog(srv))
	b.POST("/influencers/:id/campaigns/:campaignId", addToCampaign(srv))
	b.GET("/influencers/:id/contracts", contractDialog(srv))
	b.POST("/influencers/:id/contracts/:contractId", sendToInfluencer(srv))

	b.GET("/ws/search", searchSocket(srv))
}

func (srv *Server) Run() error {
	log.Println("Listening on", net.JoinHostPort(srv.Cfg.Host, srv.Cfg.Port))
	return srv.r.Run(net.JoinHostPort(srv.Cfg.Host, srv.Cfg.Port))
}

func (srv *Server) Close() error {
	log.Println("Closing the server")
	if err := srv.ws.Close(); err != nil {
		log.Println("Failed to close websockets", err)
	}
	srv.LimitSet.Close()
	return srv.db.Close()
}
