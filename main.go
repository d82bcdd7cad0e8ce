package main

import (
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/config"
	"github.com/swayops/portal/server"
	"github.com/xlab/closer"
)

var (
	configPath = flag.String("config", "config/config.json", "path to the config file")
	backupPath = flag.String("backup", "", "back up the db into this directory and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	cfg, err := config.New(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *backupPath != "" {
		if _, err := backupDatabase(cfg, *backupPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if !cfg.Sandbox {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginLogger("/static", "/favicon.ico", "/ping"))

	// Ping test
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	srv, err := server.New(cfg, r)
	if err != nil {
		log.Fatal(err)
	}

	closer.Bind(func() {
		if err := srv.Close(); err != nil {
			log.Println("Failed to close the server", err)
		}
	})
	defer closer.Close()

	// Listen and Serve
	if err = srv.Run(); err != nil {
		// using panic rather than fatal because fatal would terminate the program
		// and it would never call our closer
		log.Panicf("Failed to listen: %v", err)
	}
}

func ginLogger(prefixesToSkip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, pre := range prefixesToSkip {
			if strings.HasPrefix(path, pre) {
				return
			}
		}
		start := time.Now()

		c.Next()

		log.Printf("[%s] [%d] %s %s [%s]", c.ClientIP(), c.Writer.Status(), c.Request.Method, path, time.Since(start))
	}
}
