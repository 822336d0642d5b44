package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-column-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Column Raytracer Web Server")
	log.Printf("Render with http://localhost:%d/api/render?width=600&height=600&workers=4", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
