package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mteja/jobscout/internal/contentgen"
	"github.com/mteja/jobscout/internal/contentgen/gemini"
	"github.com/mteja/jobscout/internal/delivery"
	"github.com/mteja/jobscout/internal/dispatch"
	"github.com/mteja/jobscout/internal/filtering"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/logger"
	"github.com/mteja/jobscout/internal/report"
	"github.com/mteja/jobscout/internal/secrets"
	"github.com/mteja/jobscout/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptRejectionReport     = "Report rejection reasons"
	PromptJobsToFile          = "Dump filtered jobs to file"
	PromptAppendToExcludeFile = "Append accepted jobs to exclude file"

	geminiKeyringAccount = "gemini-api-key"
	defaultDatabase      = "jobscout.db"
	filterWorkers        = 4
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptRejectionReport, PromptJobsToFile, PromptAppendToExcludeFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter a saved job feed and dispatch applications and outreach",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("jobs-file", "f", "", "JSON file with scraped job records")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation if relevant jobs are found")
	runCmd.Flags().Bool("dry-run", false, "skip persistence, record deliveries without performing them")

	viper.BindPFlag("jobs-file", runCmd.Flags().Lookup("jobs-file"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Profile == nil {
		logger.Fatal("a candidate profile is required in the config file")
	}

	if err := config.Profile.Validate(); err != nil {
		logger.Fatal("invalid candidate profile", zap.Error(err))
	}

	jobsFile := viper.GetString("jobs-file")
	if jobsFile == "" {
		jobsFile = config.JobsFile
	}
	if jobsFile == "" {
		logger.Fatal("a jobs file is required",
			zap.String("hint", "pass --jobs-file or set JOBSCOUT_JOBS_FILE"),
		)
	}

	records, err := jobs.LoadRecords(jobsFile)
	if err != nil {
		logger.Fatal("loading the jobs file", zap.Error(err))
	}

	logger.Info("loaded job records", zap.Int("count", records.Len()))

	if excluded := excludeFromFile(records, logger); excluded > 0 {
		logger.Info("excluded jobs from previous runs", zap.Int("count", excluded))
	}

	if records.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs in the feed"))
		return
	}

	engine, err := filtering.New(config.Profile, logger)
	if err != nil {
		logger.Fatal("building the filtering engine", zap.Error(err))
	}

	results, err := engine.Run(ctx, records, filterWorkers)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	summary := filtering.Summarize(results)
	logger.Info("filtering finished",
		zap.Int("total", summary.Total),
		zap.Int("relevant", summary.Relevant),
		zap.Int("faults", summary.Faults),
		zap.Float64("relevance_rate", summary.RelevanceRate),
	)

	if summary.Relevant == 0 {
		logger.Info("exiting", zap.String("reason", "no relevant jobs after filtering"))
		return
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of relevant jobs", zap.Int("count", summary.Relevant))

		if err := handleAction(ctx, action, cmd, config, records, &summary, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, cmd *cobra.Command, config *Config, records *jobs.Records, summary *filtering.Summary, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		if err := dispatchJobs(ctx, cmd, config, records, summary, logger); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptRejectionReport:
		pretty, _ := json.MarshalIndent(summary.RejectionReasons, "", "  ")
		logger.Info(string(pretty), zap.Int("rejected", summary.Total-summary.Relevant))
		return nil
	case PromptJobsToFile:
		filename, err := records.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(records, logger)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// dispatchJobs routes every relevant record through its source strategy and
// writes the run report.
func dispatchJobs(ctx context.Context, cmd *cobra.Command, config *Config, records *jobs.Records, summary *filtering.Summary, logger *zap.Logger) error {
	dryRun := cmd.Flag("dry-run").Value.String() == "true"

	var history dispatch.History
	if !dryRun {
		dbPath := config.Database
		if dbPath == "" {
			dbPath = defaultDatabase
		}
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening the history database: %w", err)
		}
		defer db.Close()
		history = db
	}

	writer, err := newWriter(ctx, config.AI, logger)
	if err != nil {
		return fmt.Errorf("building the email writer: %w", err)
	}

	recorder := delivery.NewRecorder()
	registry := newRegistry(writer, recorder, config, logger)

	runID := report.NewRunID()
	dispatcher := dispatch.New(registry, *config.Profile.Limits, history, runID, logger)

	state, outcomes, err := dispatcher.Run(ctx, records)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	logger.Info("dispatch finished",
		zap.String("run_id", runID),
		zap.Int("applications_sent", state.ApplicationsSent),
		zap.Int("emails_sent", state.EmailsSent),
		zap.Bool("dry_run", dryRun),
	)

	return writeReports(config.Report, &report.Data{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Summary:     summary,
		Records:     records,
		Outcomes:    outcomes,
		State:       state,
	}, logger)
}

// newRegistry wires one strategy per job source. LinkedIn and Naukri carry
// in-page application forms; Indeed and TimesJobs get HR outreach.
func newRegistry(writer contentgen.Writer, del delivery.Delivery, config *Config, logger *zap.Logger) *dispatch.Registry {
	browser := dispatch.SimulatedBrowser{}

	registry := dispatch.NewRegistry()
	registry.Register(jobs.SourceLinkedIn, dispatch.NewEasyApplyStrategy("linkedin-easy-apply", browser, del, logger))
	registry.Register(jobs.SourceNaukri, dispatch.NewEasyApplyStrategy("naukri-apply", browser, del, logger))

	outreach := dispatch.NewOutreachStrategy(writer, del, config.Profile.Sender, config.Profile.Skills, logger)
	registry.Register(jobs.SourceIndeed, outreach)
	registry.Register(jobs.SourceTimesJobs, outreach)

	return registry
}

func newWriter(ctx context.Context, config *AIConfig, lg *zap.Logger) (contentgen.Writer, error) {
	if config == nil || !config.Enabled {
		return contentgen.NewTemplateWriter(), nil
	}

	if config.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:    "gemini api key",
		File:    config.Gemini.APIKeyFile,
		Keyring: geminiKeyringAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or run 'jobscout setup')", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, err
	}

	genLogger := lg.With(zap.String(logger.FieldGenerator, generator.Model()))

	return gemini.NewWriter(generator, genLogger, config.Gemini.MaxLogLength), nil
}

func writeReports(config *ReportConfig, data *report.Data, lg *zap.Logger) error {
	if config == nil {
		return nil
	}

	if config.Workbook != "" {
		if err := report.WriteWorkbook(data, config.Workbook); err != nil {
			return fmt.Errorf("writing the report workbook: %w", err)
		}
		lg.Info("wrote report workbook", zap.String("filename", config.Workbook))
	}

	if config.CSV != "" {
		if err := report.WriteCSV(data, config.CSV); err != nil {
			return fmt.Errorf("writing the report csv: %w", err)
		}
		lg.Info("wrote report csv", zap.String("filename", config.CSV))
	}

	return nil
}

func excludeFromFile(records *jobs.Records, lg *zap.Logger) int {
	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		return 0
	}

	list, err := jobs.LoadExcludeList(excludeFile)
	if err != nil {
		lg.Warn("skipping exclude file", zap.Error(err))
		return 0
	}

	removed := records.Exclude(jobs.RecordURLField, list.URLs())

	return len(removed)
}

func appendToExcludeFile(records *jobs.Records, lg *zap.Logger) error {
	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		return errors.New("no exclude file configured, pass --exclude-file")
	}

	list, err := jobs.LoadExcludeList(excludeFile)
	if err != nil {
		list = &jobs.ExcludeList{}
	}

	list.Append(records.ToExcludeList())

	if err := list.ToFile(excludeFile); err != nil {
		return err
	}

	lg.Info("appended to exclude file", zap.String("filename", excludeFile))

	records.Exclude(jobs.RecordURLField, list.URLs())

	return nil
}
