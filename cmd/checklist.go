package cmd

import (
	"fmt"

	"github.com/akarpov/jobtrack/internal/checklist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manage the manual QA checklist and submission links",
}

var checklistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the checklist with pass state and ship status",
	Run: func(_ *cobra.Command, _ []string) {
		runChecklistShow()
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <item-id>",
	Short: "Flip the pass state of one checklist item",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runChecklistToggle(args[0])
	},
}

var checklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every checklist item back to unchecked",
	Run: func(_ *cobra.Command, _ []string) {
		runChecklistReset()
	},
}

var checklistLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Set or show the submission proof links",
	Run: func(cmd *cobra.Command, _ []string) {
		runChecklistLinks(cmd)
	},
}

var checklistSubmissionCmd = &cobra.Command{
	Use:   "submission",
	Short: "Print the copy-out submission text",
	Run: func(_ *cobra.Command, _ []string) {
		runChecklistSubmission()
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
	checklistCmd.AddCommand(checklistShowCmd)
	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistResetCmd)
	checklistCmd.AddCommand(checklistLinksCmd)
	checklistCmd.AddCommand(checklistSubmissionCmd)

	checklistLinksCmd.Flags().String("project", "", "project write-up URL")
	checklistLinksCmd.Flags().String("repo", "", "repository URL")
	checklistLinksCmd.Flags().String("deploy", "", "live deployment URL")
}

func openChecklist(log *zap.Logger) (*checklist.Store, func()) {
	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}

	return checklist.NewStore(kv), func() { kv.Close() }
}

func runChecklistShow() {
	log := newLogger()
	checks, closeKV := openChecklist(log)
	defer closeKV()

	state := checks.Checks()
	for _, item := range checklist.Items {
		mark := " "
		if state[item.ID] {
			mark = "x"
		}
		fmt.Printf("[%s] %-4s %s\n", mark, item.ID, item.Label)
		fmt.Printf("          %s\n", item.Hint)
	}

	fmt.Printf("\n%d/%d passed · %s\n", checks.Passed(), len(checklist.Items), checks.ShipStatus())
}

func runChecklistToggle(id string) {
	log := newLogger()
	checks, closeKV := openChecklist(log)
	defer closeKV()

	state, err := checks.Toggle(id)
	if err != nil {
		log.Fatal("toggling the checklist item", zap.Error(err))
	}

	verb := "unchecked"
	if state[id] {
		verb = "checked"
	}
	fmt.Printf("%s %s (%d/%d passed)\n", id, verb, checks.Passed(), len(checklist.Items))
}

func runChecklistReset() {
	log := newLogger()
	checks, closeKV := openChecklist(log)
	defer closeKV()

	if err := checks.Reset(); err != nil {
		log.Fatal("resetting the checklist", zap.Error(err))
	}
	fmt.Println("Checklist reset.")
}

func runChecklistLinks(cmd *cobra.Command) {
	log := newLogger()
	checks, closeKV := openChecklist(log)
	defer closeKV()

	links := checks.Links()
	changed := false
	if cmd.Flags().Changed("project") {
		links.ProjectURL = flagString(cmd, "project")
		changed = true
	}
	if cmd.Flags().Changed("repo") {
		links.RepoURL = flagString(cmd, "repo")
		changed = true
	}
	if cmd.Flags().Changed("deploy") {
		links.DeployURL = flagString(cmd, "deploy")
		changed = true
	}

	if changed {
		if err := checks.SaveLinks(links); err != nil {
			log.Fatal("saving the proof links", zap.Error(err))
		}
	}

	fmt.Printf("Project:    %s\n", orDash(links.ProjectURL))
	fmt.Printf("Repository: %s\n", orDash(links.RepoURL))
	fmt.Printf("Deployment: %s\n", orDash(links.DeployURL))
	fmt.Printf("Status:     %s\n", checks.ShipStatus())
}

func runChecklistSubmission() {
	log := newLogger()
	checks, closeKV := openChecklist(log)
	defer closeKV()

	fmt.Println(checks.SubmissionText())
}
