package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"probinary_go/config"
	"probinary_go/logs"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the config.yaml file")
	scenarioPath := flag.String("scenario", "", "Scenario file to replay (overrides normal_config.scenario_file)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Note: .env file not found, will continue using system environment variables.")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Fatal error: Unable to load config file '%s': %v\n", *configPath, err)
		os.Exit(1)
	}
	cfg.ApplyEnv(config.LoadEnvConfig())
	if *scenarioPath != "" {
		cfg.Normal.ScenarioFile = *scenarioPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Fatal error: Invalid configuration after environment overrides: %v\n", err)
		os.Exit(1)
	}
	if cfg.Normal.ScenarioFile == "" {
		fmt.Println("Fatal error: no scenario file given (use -scenario or normal_config.scenario_file)")
		os.Exit(1)
	}

	logFilename := fmt.Sprintf("%s/%s_session.log", cfg.Normal.LogDirectory, cfg.Name)
	stateFilename := fmt.Sprintf("%s/%s_state.json", cfg.Normal.StateDirectory, cfg.Name)

	if err := logs.Init(cfg.Logs, logFilename); err != nil {
		fmt.Printf("Fatal error: Failed to initialize logging system: %v\n", err)
		os.Exit(1)
	}
	defer logs.Close()

	scenario, err := config.LoadScenario(cfg.Normal.ScenarioFile)
	if err != nil {
		logs.Fatalf("Failed to load scenario: %v", err)
	}

	orchestrator, err := NewOrchestrator(cfg, scenario, stateFilename)
	if err != nil {
		logs.Fatalf("Failed to initialize Orchestrator: %v", err)
	}
	orchestrator.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logs.Warn("Termination signal received.")
	case <-orchestrator.Done():
	}

	if err := orchestrator.Stop(); err != nil {
		logs.Errorf("Session replay ended with error: %v", err)
	}
}
