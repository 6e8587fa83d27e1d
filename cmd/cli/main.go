package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jakechorley/pto-planner/internal/config"
	"github.com/jakechorley/pto-planner/pkg/core/planner"
	"github.com/jakechorley/pto-planner/pkg/core/services"
	"github.com/jakechorley/pto-planner/pkg/db"
	"github.com/jakechorley/pto-planner/pkg/holidays"
	"github.com/jakechorley/pto-planner/pkg/render"
	"github.com/jakechorley/pto-planner/pkg/server"
	"github.com/jakechorley/pto-planner/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	store  db.PlanStore
	logger *zap.Logger
	ctx    context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "pto-planner",
		Short: "PTO Vacation Optimizer - Stretch your PTO days into longer vacations",
		Long: `A planner that places PTO days around weekends and public holidays so
separate days off merge into long contiguous vacations. Supports four
strategies, multi-group coordination and a local plan history.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and the plan history store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Optional .env for PTO_PLANNER_DB and friends
	godotenv.Load()

	app.logger, err = logging.InitLogger("pto-planner")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	dbPath := os.Getenv("PTO_PLANNER_DB")
	if dbPath == "" {
		dbPath = "pto-planner.db"
	}

	app.logger.Debug("Opening plan database", zap.String("path", dbPath))
	gdb, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open plan database: %w", err)
	}

	app.store, err = db.NewGormPlanStore(gdb)
	if err != nil {
		return fmt.Errorf("failed to initialize plan store: %w", err)
	}

	app.logger.Debug("Application initialized")
	return nil
}

// Command definitions

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize PTO placement for maximum time off",
		Long: `Optimize your PTO placement for maximum time off.

Use --budget for single-person mode, or --config for multi-group
(family / friends) mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			budget, _ := cmd.Flags().GetInt("budget")
			floating, _ := cmd.Flags().GetInt("floating")
			country, _ := cmd.Flags().GetString("country")
			holidayDates, _ := cmd.Flags().GetStringArray("holiday")
			strategyName, _ := cmd.Flags().GetString("strategy")
			showCalendar, _ := cmd.Flags().GetBool("calendar")
			outputJSON, _ := cmd.Flags().GetBool("json")
			configPath, _ := cmd.Flags().GetString("config")
			save, _ := cmd.Flags().GetBool("save")

			strategy, err := planner.ParseStrategy(strategyName)
			if err != nil {
				return err
			}

			if configPath != "" {
				return runMultiGroup(configPath, year, strategy, showCalendar, outputJSON, save)
			}

			if budget < 0 || !cmd.Flags().Changed("budget") {
				return fmt.Errorf("--budget is required (or use --config for multi-group mode)")
			}
			if year == 0 {
				year = time.Now().Year()
			}
			if strings.EqualFold(country, "none") {
				country = ""
			}

			hols, err := services.ResolveHolidays(year, country, holidayDates)
			if err != nil {
				return err
			}

			result, err := services.Optimize(app.ctx, app.store, app.logger, services.OptimizeRequest{
				Year:             year,
				PTOBudget:        budget,
				FloatingHolidays: floating,
				Holidays:         hols,
				Strategy:         strategy,
				Save:             save,
			})
			if err != nil {
				return err
			}

			plans := make([]*planner.Plan, 0, len(result.Plans))
			for _, ps := range result.Plans {
				plans = append(plans, ps.Plan)
			}

			if outputJSON {
				return render.EncodeJSON(os.Stdout, render.NewOutputJSON(year, budget, floating, plans))
			}

			fmt.Print(render.FormatHeader(year, budget, floating, hols))
			holidayDatesOnly := make([]time.Time, 0, len(hols))
			for _, h := range hols {
				holidayDatesOnly = append(holidayDatesOnly, h.Date)
			}
			for _, p := range plans {
				fmt.Print(render.FormatPlan(p, budget, floating))
				if showCalendar {
					fmt.Print(render.PlanCalendarView(p, year, holidayDatesOnly))
				}
			}
			fmt.Print(render.FormatFooter(len(plans)))

			printSavedIDs(result.SavedIDs)
			return nil
		},
	}

	cmd.Flags().IntP("year", "y", 0, "Year to plan (default: current year)")
	cmd.Flags().IntP("budget", "b", 0, "Number of PTO days available (single-group mode)")
	cmd.Flags().IntP("floating", "f", 0, "Number of floating holidays available")
	cmd.Flags().StringP("country", "c", "us", "Holiday preset ("+strings.Join(holidays.Countries(), ", ")+"). Use 'none' to skip")
	cmd.Flags().StringArrayP("holiday", "H", nil, "Additional holiday date (YYYY-MM-DD). Repeatable")
	cmd.Flags().StringP("strategy", "s", "all", "Strategy to run: all, bridges, longest, weekends, quarterly")
	cmd.Flags().Bool("calendar", true, "Show month-by-month calendar view")
	cmd.Flags().Bool("json", false, "Output results as JSON")
	cmd.Flags().String("config", "", "Path to YAML config file for multi-group optimization")
	cmd.Flags().Bool("save", false, "Save generated plans to the local history")

	return cmd
}

// runMultiGroup handles the --config path of the optimize command
func runMultiGroup(configPath string, yearOverride int, strategy planner.Strategy, showCalendar, outputJSON, save bool) error {
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return err
	}

	year := yearOverride
	if year == 0 {
		year = cfg.Year
	}
	if year == 0 {
		year = time.Now().Year()
	}

	groups, err := services.BuildGroups(cfg, year)
	if err != nil {
		return err
	}

	result, err := services.OptimizeGroups(app.ctx, app.store, app.logger, services.GroupOptimizeRequest{
		Year:     year,
		Groups:   groups,
		Strategy: strategy,
		Save:     save,
	})
	if err != nil {
		return err
	}

	plans := make([]*planner.GroupPlan, 0, len(result.Plans))
	for _, ps := range result.Plans {
		plans = append(plans, ps.Plan)
	}

	if outputJSON {
		return render.EncodeJSON(os.Stdout, render.NewGroupOutputJSON(year, groups, plans))
	}

	fmt.Print(render.FormatGroupHeader(year, groups))
	groupHolidays := make([][]time.Time, 0, len(groups))
	for _, g := range groups {
		dates := make([]time.Time, 0, len(g.Holidays))
		for _, h := range g.Holidays {
			dates = append(dates, h.Date)
		}
		groupHolidays = append(groupHolidays, dates)
	}
	for _, p := range plans {
		fmt.Print(render.FormatGroupPlan(p, groups))
		if showCalendar {
			fmt.Print(render.GroupCalendarView(p, year, groupHolidays))
		}
	}
	fmt.Print(render.FormatFooter(len(plans)))

	printSavedIDs(result.SavedIDs)
	return nil
}

func printSavedIDs(ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Printf("\nSaved %d plan(s) to history:\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
}

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays [country]",
		Short: "List holiday presets, or the holidays of one country",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("\nAvailable holiday presets:")
				for _, c := range holidays.Countries() {
					description, _ := holidays.Describe(c)
					fmt.Printf("  %-4s %s\n", c, description)
				}
				fmt.Println()
				return nil
			}

			country := args[0]
			year, _ := cmd.Flags().GetInt("year")
			if year == 0 {
				year = time.Now().Year()
			}

			description, err := holidays.Describe(country)
			if err != nil {
				return err
			}
			hols, err := holidays.Preset(country, year)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s holidays %d (%d observed dates):\n\n", description, year, len(hols))
			for _, h := range hols {
				fmt.Printf("  %s  %s\n", h.Date.Format("Mon, Jan 02"), h.Name)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntP("year", "y", 0, "Year to expand the preset for (default: current year)")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously saved plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			limit, _ := cmd.Flags().GetInt("limit")

			records, err := app.store.ListPlans(year, limit)
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("No saved plans. Run 'optimize --save' to create some.")
				return nil
			}

			fmt.Printf("\nFound %d saved plan(s):\n\n", len(records))
			for _, r := range records {
				groupInfo := ""
				if r.GroupCount > 0 {
					groupInfo = fmt.Sprintf(" [%d groups]", r.GroupCount)
				}
				fmt.Printf("  %s  %d  %-10s %-28s %2d vacation days%s\n",
					r.ID, r.Year, r.Strategy, r.Name, r.VacationDays, groupInfo)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntP("year", "y", 0, "Only show plans for this year")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of plans to show")

	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan_id>",
		Short: "Print the stored JSON document of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.store.GetPlan(args[0])
			if err != nil {
				return err
			}
			fmt.Println(rec.Payload)
			return nil
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan_id>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.DeletePlan(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted plan %s\n", args[0])
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			srv := server.New(app.logger, app.store)
			return srv.Listen(addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	return cmd
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (run multiple commands in one process)",
		Long: `Start an interactive session where you can run multiple commands without
restarting the process. The session will keep running until you type
'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full
				// Execute() flow so PersistentPreRunE does not re-run initApp
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-30s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                           Show this help message")
	fmt.Println("  exit, quit                     Exit the interactive session")
}
