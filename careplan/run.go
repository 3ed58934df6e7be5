// Copyright 2025 CarePlanGen
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package careplan

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"careplan/platform/careplan/llm/perplexity"
)

// Run is the exported entry point for the care-plan service.
//
// It loads configuration, constructs the Perplexity provider, wires the
// HTTP routes, and starts the server. The function blocks until the server
// is shut down.
//
// Environment variables used:
//   - SONAR_API_KEY: Perplexity API key (required)
//   - SONAR_MODEL: model override (default: sonar-reasoning-pro)
//   - PORT: HTTP server port (default: 5001)
func Run() {
	log.Println("Starting Care Plan Generator backend...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	apiKey := os.Getenv("SONAR_API_KEY")
	if apiKey == "" {
		log.Fatal("SONAR_API_KEY environment variable is not set. Please set it to your Perplexity API key.")
	}

	provider, err := perplexity.NewProvider(perplexity.Config{
		APIKey: apiKey,
		Model:  getEnv("SONAR_MODEL", perplexity.DefaultModel),
	})
	if err != nil {
		log.Fatalf("Failed to initialize Perplexity provider: %v", err)
	}

	// Startup connectivity probe. A network failure here is logged but not
	// fatal; the service can come up before the upstream does.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := provider.HealthCheck(ctx); err != nil {
		log.Printf("WARNING: Perplexity connectivity check failed: %v", err)
	} else {
		log.Println("Perplexity API key validated successfully")
	}

	server := NewServer(provider)

	// Setup router
	r := mux.NewRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server.Routes(r)

	// Prometheus native format
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	port := getEnv("PORT", "5001")
	handler := c.Handler(r)
	log.Printf("Care Plan Generator listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
