package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/database"
	"ai-travel-planner/internal/guide"
	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/llm"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"
	"ai-travel-planner/internal/shared"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		runPlan(cfg, os.Args[2:])
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		affected, err := metrics.NewStore(db.SQL).Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(cfg *config.Config, args []string) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	destination := planCmd.String("destination", planner.DemoDestination, "Destination city, e.g. \"Jaipur, India\"")
	days := planCmd.Int("days", cfg.DefaultTripDays, "Trip duration in days")
	budget := planCmd.Float64("budget", cfg.DefaultDailyBudget, "Daily budget in INR")
	interests := planCmd.String("interests", strings.Join(cfg.DefaultInterests, ","), "Comma-separated interests")
	pace := planCmd.String("pace", string(itinerary.PaceModerate), "Trip pace: Relaxed, Moderate or Fast")
	skipNightlife := planCmd.Bool("skip-nightlife", false, "End all days by 6 PM")
	planCmd.Parse(args)

	ctx := context.Background()

	var generator llm.StructuredGenerator
	switch {
	case cfg.GeminiAPIKey != "":
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		generator = geminiClient
	case cfg.GroqAPIKey != "":
		generator = llm.NewGroqClient(cfg)
	default:
		fmt.Println("No API key configured; printing the demo itinerary.")
	}

	plannerSvc := planner.NewService(generator, guide.NewClient(cfg.GuideBaseURL), cfg.DemoMode())
	sessions := session.NewStore(cfg.SessionTTL)
	sess := sessions.Create(*destination, cfg.DemoMode())

	req := itinerary.GenerationRequest{
		Destination:   *destination,
		Duration:      *days,
		DailyBudget:   *budget,
		Interests:     splitInterests(*interests),
		Pace:          itinerary.Pace(*pace),
		SkipNightlife: *skipNightlife,
	}

	result, metas := plannerSvc.Generate(ctx, sess, req)
	recordMetas(cfg, metas)

	if result.Message != "" {
		fmt.Printf("Note: %s\n\n", result.Message)
	}
	printItinerary(result.Itinerary, result.TotalCost)
}

func printItinerary(it itinerary.Itinerary, totalCost float64) {
	for _, day := range it {
		fmt.Printf("Day %d: %s\n", day.Day, day.Theme)
		for i, act := range day.Activities {
			fmt.Printf("  %d. %s  %s (%s)\n", i+1, act.Time, act.Description, itinerary.FormatCost(act.EstimatedCost))
			if act.Transportation != "" {
				fmt.Printf("     Transport: %s\n", act.Transportation)
			}
		}
		if day.AccommodationSuggestion != "" {
			fmt.Printf("  Stay: %s\n", day.AccommodationSuggestion)
		}
		fmt.Printf("  Day budget: %s\n\n", itinerary.FormatCost(day.DailyBudgetSummary))
	}

	fmt.Printf("Total cost: %s", itinerary.FormatCost(totalCost))
	if len(it) > 0 {
		fmt.Printf(" (%s/day average)", itinerary.FormatCost(itinerary.AverageDailyCost(totalCost, len(it))))
	}
	fmt.Printf("\nSustainability score: %d/5\n", itinerary.SustainabilityScore(it))
}

// recordMetas persists generation metrics. Failures only warn: the plan was
// already printed and is worth more than the bookkeeping.
func recordMetas(cfg *config.Config, metas []shared.AgentMeta) {
	if len(metas) == 0 {
		return
	}
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Printf("Warning: failed to open metrics database: %v", err)
		return
	}
	defer db.Close()

	if err := metrics.NewStore(db.SQL).RecordMetas(metas); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}
}

func splitInterests(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: travel-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Generate a student travel itinerary")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
