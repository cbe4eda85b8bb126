package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"dealdesk/pkg/api/analysis"
	"dealdesk/pkg/api/buybox"
	"dealdesk/pkg/api/config"
	"dealdesk/pkg/api/deal"
	"dealdesk/pkg/api/export"
	"dealdesk/pkg/api/projection"
	"dealdesk/pkg/api/scan"
	"dealdesk/pkg/api/snapshot"
	"dealdesk/pkg/api/workbook"
	"dealdesk/pkg/core/agent"
	"dealdesk/pkg/core/prompt"
	"dealdesk/pkg/core/ratio"
	coreScan "dealdesk/pkg/core/scan"
	"dealdesk/pkg/core/scorecard"
	"dealdesk/pkg/core/store"
	"dealdesk/pkg/core/workspace"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Built-in prompts first, then optional overrides from resources/
	prompt.RegisterBuiltins()
	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] No prompt overrides loaded: %v\n", err)
		fmt.Println("  Falling back to built-in prompts")
	}
	fmt.Printf("[PROMPT] %d prompts registered\n", prompt.Get().Count())

	// Initialize manager from config
	configData, _ := os.ReadFile("config/agents.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Ratio benchmarks (config file, or built-in defaults)
	benchmarks, err := ratio.LoadBenchmarks("config/benchmarks.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load benchmarks: %v\n", err)
		fmt.Println("  Falling back to built-in defaults")
		benchmarks = ratio.DefaultBenchmarks()
	}

	// Workbook store: in-memory, or Redis when REDIS_ADDR is set
	workbooks := workspace.NewFromEnv()

	// Optional Postgres snapshots
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] Snapshots disabled: %v\n", err)
	} else {
		defer store.Close()
		fmt.Println("[STORE] Postgres connected, snapshots enabled")
	}

	// Document scanner: live Gemini agent, or canned mock data without a key
	var scanner coreScan.DocumentScanner
	if scanAgent, err := coreScan.NewAgent(ctx); err != nil {
		fmt.Printf("[WARNING] Document scanner unavailable, using mock: %v\n", err)
		scanner = &coreScan.MockScanner{}
	} else {
		scanner = scanAgent
	}

	// Wire handlers
	analysis.InitHandler(benchmarks)
	buybox.InitHandler(scorecard.NewGenerator(agentMgr.GetProvider("scorecard")))
	scan.InitHandler(scanner, workbooks)
	snapshot.InitHandler(store.NewSnapshotRepo(), benchmarks)
	wbHandler := workbook.NewHandler(workbooks)
	cfgHandler := config.NewHandler(agentMgr)

	// Calculation endpoints
	http.HandleFunc("/api/analysis", analysis.HandleAnalyze)
	http.HandleFunc("/api/dealstructure", deal.HandleStructure)
	http.HandleFunc("/api/projection", projection.HandleProject)
	http.HandleFunc("/api/fitscore", buybox.HandleFitScore)
	http.HandleFunc("/api/scorecard/generate", buybox.HandleGenerate)

	// Ingestion endpoints
	http.HandleFunc("/api/scan", scan.HandleScan)
	http.HandleFunc("/api/workbook/import", wbHandler.HandleImport)

	// Workbook endpoints
	http.HandleFunc("/api/workbooks", wbHandler.HandleWorkbooks)
	http.HandleFunc("/api/workbook", wbHandler.HandleWorkbook)

	// Export and snapshot endpoints
	http.HandleFunc("/api/export", export.HandleExport)
	http.HandleFunc("/api/snapshot/save", snapshot.HandleSave)
	http.HandleFunc("/api/snapshot", snapshot.HandleLoad)
	http.HandleFunc("/api/snapshots", snapshot.HandleList)

	// Provider config endpoints
	http.HandleFunc("/api/config", cfgHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", cfgHandler.HandleSwitch)

	http.HandleFunc("/api/health", handleHealth)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analysis")
	fmt.Println("  - POST /api/dealstructure")
	fmt.Println("  - POST /api/projection")
	fmt.Println("  - POST /api/fitscore")
	fmt.Println("  - POST /api/scorecard/generate")
	fmt.Println("  - POST /api/scan")
	fmt.Println("  - POST /api/workbook/import")
	fmt.Println("  - GET/POST /api/workbooks")
	fmt.Println("  - GET/DELETE /api/workbook?id=...")
	fmt.Println("  - POST /api/export")
	fmt.Println("  - POST /api/snapshot/save")
	fmt.Println("  - GET  /api/snapshot?slug=...")
	fmt.Println("  - GET  /api/snapshots")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET  /api/health")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	status := map[string]string{"status": "ok", "snapshots": "disabled"}
	if store.GetPool() != nil {
		if err := store.Ping(r.Context()); err != nil {
			status["snapshots"] = fmt.Sprintf("error: %v", err)
		} else {
			status["snapshots"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
