package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Optional; real environment variables take precedence
	_ = godotenv.Load()

	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	var uploader server.Uploader
	if cfg := output.S3ConfigFromEnv(); cfg.Enabled() {
		s3Uploader, err := output.NewS3Uploader(cfg, renderer.NewDefaultLogger())
		if err != nil {
			log.Printf("Error configuring S3: %v", err)
			os.Exit(1)
		}
		uploader = s3Uploader
		log.Printf("Uploads enabled to bucket %s", cfg.Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(*port, uploader)

	log.Printf("Path Tracer Render Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
