package cmd

import (
	"fmt"

	"github.com/akarpov/jobtrack/internal/tracker"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Track application statuses",
}

var statusSetCmd = &cobra.Command{
	Use:   "set <job-id> [status]",
	Short: "Record the application status for a job",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		runStatusSet(args)
	},
}

var statusHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent status changes, newest first",
	Run: func(_ *cobra.Command, _ []string) {
		runStatusHistory()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.AddCommand(statusSetCmd)
	statusCmd.AddCommand(statusHistoryCmd)
}

func runStatusSet(args []string) {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	jobCatalog, err := loadCatalog(config)
	if err != nil {
		log.Fatal("loading the job catalog", zap.Error(err))
	}

	jobID := args[0]
	job := jobCatalog.FindByID(jobID)
	if job == nil {
		log.Fatal("unknown job id", zap.String("job_id", jobID))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	tracked := tracker.NewStore(kv)

	var status tracker.Status
	if len(args) == 2 {
		status, err = tracker.ParseStatus(args[1])
		if err != nil {
			log.Fatal("invalid status", zap.Error(err))
		}
	} else {
		status, err = promptStatus(job.Title, tracked.Status(jobID))
		if err != nil {
			log.Fatal("selecting a status", zap.Error(err))
		}
	}

	if err := tracked.SetStatus(jobID, status); err != nil {
		log.Fatal("recording the status", zap.Error(err))
	}

	fmt.Printf("%s — %s is now %s\n", job.Title, job.Company, status)
}

func promptStatus(jobTitle string, current tracker.Status) (tracker.Status, error) {
	all := tracker.All()
	items := make([]string, len(all))
	cursor := 0
	for i, s := range all {
		items[i] = string(s)
		if s == current {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     fmt.Sprintf("Status for %q", jobTitle),
		Items:     items,
		CursorPos: cursor,
	}

	_, choice, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return tracker.ParseStatus(choice)
}

func runStatusHistory() {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	jobCatalog, err := loadCatalog(config)
	if err != nil {
		log.Fatal("loading the job catalog", zap.Error(err))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	history := tracker.NewStore(kv).History()
	if len(history) == 0 {
		fmt.Println("No status changes recorded yet.")
		return
	}

	for _, entry := range history {
		title := "Unknown"
		company := ""
		if job := jobCatalog.FindByID(entry.JobID); job != nil {
			title = job.Title
			company = " — " + job.Company
		}
		fmt.Printf("%s  %s%s: %s\n", entry.Date.Local().Format("2006-01-02 15:04"), title, company, entry.Status)
	}
}
