package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoa-reconcile/internal/config"
	"github.com/hoa-reconcile/internal/importer"
	"github.com/hoa-reconcile/internal/match"
	"github.com/hoa-reconcile/internal/roster"
	"github.com/hoa-reconcile/internal/scrape"
	"github.com/hoa-reconcile/internal/store"
	"github.com/hoa-reconcile/internal/web"
)

var debugOutput bool

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "HOA roster reconciliation",
		Long:  `Reconcile the association's owner spreadsheet against the scraped member directory`,
	}

	rootCmd.PersistentFlags().BoolVar(&debugOutput, "debug", false, "Enable debug output")

	// Add subcommands
	rootCmd.AddCommand(createScrapeCmd())
	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createSummaryCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createRunsCmd())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createScrapeCmd creates the scrape subcommand
func createScrapeCmd() *cobra.Command {
	var baseURL string
	var output string
	var pageSize int
	var cookies []string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the member directory",
		Long:  `Fetch every member from the association website and write one contact row per person to CSV`,
		Run: func(cmd *cobra.Command, args []string) {
			if baseURL == "" {
				baseURL = config.GetEnv("SCRAPE_BASE_URL", "")
			}
			if baseURL == "" {
				log.Fatal("Base URL required: pass --base-url or set SCRAPE_BASE_URL")
			}

			client := scrape.NewClient(baseURL)
			client.PageSize = pageSize
			for _, cookie := range cookies {
				name, value, ok := strings.Cut(cookie, "=")
				if !ok {
					log.Fatalf("Invalid cookie %q, expected name=value", cookie)
				}
				client.Cookies[name] = value
			}

			ctx := context.Background()

			members, err := client.FetchDirectory(ctx)
			if err != nil {
				log.Fatalf("Failed to fetch directory: %v", err)
			}
			fmt.Printf("Fetched %d members\n", len(members))

			contacts, err := client.ProcessMembers(ctx, members)
			if err != nil {
				log.Fatalf("Failed to process members: %v", err)
			}

			if err := importer.WriteContacts(output, contacts); err != nil {
				log.Fatalf("Failed to write contacts: %v", err)
			}
			fmt.Printf("Wrote %d contacts to %s\n", len(contacts), output)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Association website base URL")
	cmd.Flags().StringVar(&output, "output", "contacts.csv", "Output CSV file")
	cmd.Flags().IntVar(&pageSize, "page-size", 614, "Directory search page size")
	cmd.Flags().StringArrayVar(&cookies, "cookie", nil, "Session cookie as name=value (repeatable)")

	return cmd
}

// createMatchCmd creates the match subcommand
func createMatchCmd() *cobra.Command {
	var ownersFile string
	var contactsFile string
	var output string
	var runLabel string
	var save bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match owners against scraped households",
		Long:  `Condense scraped contacts into households, match the owner roster against them, and write the reconciled rows to CSV`,
		Run: func(cmd *cobra.Command, args []string) {
			results := runMatching(ownersFile, contactsFile)

			if err := importer.WriteResults(output, results); err != nil {
				log.Fatalf("Failed to write results: %v", err)
			}
			fmt.Printf("Wrote %d result rows to %s\n", len(results), output)

			fmt.Println()
			fmt.Println(match.Summarize(results).String())

			if save {
				if runLabel == "" {
					runLabel = fmt.Sprintf("match-%d", time.Now().Unix())
				}
				runID := archiveRun(runLabel, results)
				fmt.Printf("\nArchived run %s as %s\n", runLabel, runID)
			}
		},
	}

	cmd.Flags().StringVar(&ownersFile, "owners", "owners.csv", "Owner roster CSV")
	cmd.Flags().StringVar(&contactsFile, "contacts", "contacts.csv", "Scraped contacts CSV")
	cmd.Flags().StringVar(&output, "output", "match_results.csv", "Output CSV file")
	cmd.Flags().StringVar(&runLabel, "label", "", "Label for the archived run")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the run to the database")

	return cmd
}

// createSummaryCmd creates the summary subcommand
func createSummaryCmd() *cobra.Command {
	var ownersFile string
	var contactsFile string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print match statistics without writing output",
		Run: func(cmd *cobra.Command, args []string) {
			results := runMatching(ownersFile, contactsFile)
			fmt.Println(match.Summarize(results).String())
		},
	}

	cmd.Flags().StringVar(&ownersFile, "owners", "owners.csv", "Owner roster CSV")
	cmd.Flags().StringVar(&contactsFile, "contacts", "contacts.csv", "Scraped contacts CSV")

	return cmd
}

// createServeCmd creates the serve subcommand
func createServeCmd() *cobra.Command {
	var ownersFile string
	var contactsFile string
	var configFile string
	var port int
	var archive bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the match results for review",
		Long:  `Run the matching pipeline and serve the results over HTTP for browser review`,
		Run: func(cmd *cobra.Command, args []string) {
			results := runMatching(ownersFile, contactsFile)

			serverConfig := web.DefaultConfig()
			if configFile != "" {
				loaded, err := web.LoadConfig(configFile)
				if err != nil {
					log.Fatalf("Failed to load config: %v", err)
				}
				serverConfig = loaded
			}
			if port != 0 {
				serverConfig.Server.Port = port
			}

			var st *store.Store
			if archive {
				var err error
				st, err = store.Open()
				if err != nil {
					log.Fatalf("Failed to connect to database: %v", err)
				}
				if err := st.EnsureSchema(); err != nil {
					log.Fatalf("Failed to ensure schema: %v", err)
				}
			}

			server := web.NewServer(serverConfig, results, st)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&ownersFile, "owners", "owners.csv", "Owner roster CSV")
	cmd.Flags().StringVar(&contactsFile, "contacts", "contacts.csv", "Scraped contacts CSV")
	cmd.Flags().StringVar(&configFile, "config", "", "Server config JSON file")
	cmd.Flags().IntVar(&port, "port", 0, "Override the configured port")
	cmd.Flags().BoolVar(&archive, "archive", false, "Expose archived runs from the database")

	return cmd
}

// createRunsCmd creates the runs subcommand
func createRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived match runs",
		Run: func(cmd *cobra.Command, args []string) {
			st, err := store.Open()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(limit)
			if err != nil {
				log.Fatalf("Failed to list runs: %v", err)
			}
			if len(runs) == 0 {
				fmt.Println("No archived runs.")
				return
			}

			fmt.Println("Created              | Label                | Total | Exact | Fuzzy | No Match")
			fmt.Println("---------------------|----------------------|-------|-------|-------|---------")
			for _, run := range runs {
				fmt.Printf("%-20s | %-20s | %5d | %5d | %5d | %8d\n",
					run.CreatedAt.Format("2006-01-02 15:04:05"),
					run.RunLabel,
					run.Summary.Total,
					run.Summary.Exact,
					run.Summary.Fuzzy,
					run.Summary.NoMatch)
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")

	return cmd
}

// runMatching loads both inputs, condenses the scraped side and runs the
// matching engine.
func runMatching(ownersFile, contactsFile string) []match.Result {
	owners, err := importer.LoadOwners(ownersFile)
	if err != nil {
		log.Fatalf("Failed to load owners: %v", err)
	}

	contacts, err := importer.LoadContacts(contactsFile)
	if err != nil {
		log.Fatalf("Failed to load contacts: %v", err)
	}

	households, stats := roster.Condense(contacts)
	fmt.Printf("Loaded %d owners, condensed %d contacts into %d households\n",
		len(owners), stats.Contacts, stats.Households)
	if stats.MissingPropertyAddress > 0 {
		fmt.Printf("Warning: %d contacts had no property address\n", stats.MissingPropertyAddress)
	}

	engine := match.NewEngine()
	return engine.Run(debugOutput, owners, households)
}

// archiveRun saves a completed run to the database and returns its ID.
func archiveRun(runLabel string, results []match.Result) string {
	st, err := store.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	runID, err := st.SaveRun(runLabel, results)
	if err != nil {
		log.Fatalf("Failed to archive run: %v", err)
	}

	return runID.String()
}
