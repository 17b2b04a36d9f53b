package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	logger "github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/managers"
	"github.com/adrias-freebrand/cookie-goat/internal/system/schedulers"
	"github.com/adrias-freebrand/cookie-goat/internal/system/workers"
)

const configFile = "config/deployment.yaml"

// schedulerTickInterval bounds how quickly an elapsed autoscan window is
// noticed; the scan cadence itself comes from persisted settings.
const schedulerTickInterval = time.Hour

func main() {
	cmpHome := getCMPHome()

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cmpConfig, err := config.LoadConfig(cmpHome, configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeCMPRuntime(cmpHome, cmpConfig); err != nil {
		log.Fatalf("Failed to initialize runtime configuration: %v", err)
	}

	if err := logger.Init(cmpConfig.Log.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	initDatabase(cmpHome, cmpConfig)

	workers.StartConsentLogWorker()
	go schedulers.StartAutoscanScheduler(schedulerTickInterval)

	serverAddr := fmt.Sprintf("%s:%d", cmpConfig.Addr.Host, cmpConfig.Addr.Port)
	mux := enableCORS(withTraceID(initMultiplexer()), cmpConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.GetLogger().Fatal("Failed to start listener", logger.Error(err))
	}

	logger.GetLogger().Info("cookie-goat consent service started",
		logger.String("addr", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.GetLogger().Fatal("Failed to serve requests", logger.Error(err))
	}
}

// initDatabase applies the schema bootstrap file when one is configured.
func initDatabase(cmpHome string, cmpConfig *config.Config) {

	if cmpConfig.SchemaFile == "" {
		return
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(cmpHome, cmpConfig.SchemaFile); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		logger.GetLogger().Fatal("Failed to register the services", logger.Error(err))
	}

	return mux
}

// withTraceID attaches a per-request trace ID so audit entries emitted while
// serving the request can be correlated.
func withTraceID(next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := syscontext.WithTraceID(r.Context(), syscontext.GenerateTraceID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// enableCORS wraps the mux with an origin allowlist. The consent endpoints
// need credentialed cross-origin access from the protected site, so the
// wildcard origin is never used.
func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {

	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+constants.CSRFHeaderName)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getCMPHome() string {

	projectHome := ""
	projectHomeFlag := flag.String("cmpHome", "", "Path to the consent service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			log.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
