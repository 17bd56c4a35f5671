package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	appexport "ee-export/application/export"
	"ee-export/domain/export"
	"ee-export/infrastructure/config"
	"ee-export/infrastructure/drive"
	"ee-export/infrastructure/earthengine"
	"ee-export/infrastructure/storage"
	"ee-export/infrastructure/taskfile"

	"github.com/spf13/cobra"
)

var (
	submitKind        string
	submitProject     string
	submitYes         bool
	submitNoPreflight bool
)

var submitCmd = &cobra.Command{
	Use:   "submit TASKFILE",
	Short: "Convert a legacy task and start the export",
	Long: `Convert a legacy export task file and submit it to Earth Engine.

A request id is generated when the task has no "id", so resubmitting the
printed request is deduplicated by the backend. Before submitting, output
buckets are checked (and Drive folders, if enabled in the config).

Example:
  ee-export submit --project my-project task.json
  ee-export submit --kind map --yes --no-preflight tiles.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVar(&submitKind, "kind", "", "Request kind: image, table, video, map, videomap or classifier")
	submitCmd.Flags().StringVar(&submitProject, "project", "", "Cloud project to run the export in (default from config)")
	submitCmd.Flags().BoolVarP(&submitYes, "yes", "y", false, "Submit without asking for confirmation")
	submitCmd.Flags().BoolVar(&submitNoPreflight, "no-preflight", false, "Skip output location checks")
}

// SubmitInput holds the flags and arguments of the submit command
type SubmitInput struct {
	TaskPath  string
	Kind      string
	Project   string
	Yes       bool
	Preflight bool
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c := GetConfig()
	if c == nil {
		c = &config.Config{}
	}

	project := submitProject
	if project == "" {
		project = c.Google.Project
	}
	if project == "" {
		return fmt.Errorf("no cloud project given. Use --project or run 'ee-export config set google.project <id>'")
	}

	creds := credentials(c)
	submitter, err := earthengine.NewClient(ctx, creds)
	if err != nil {
		return fmt.Errorf("failed to create Earth Engine client: %w", err)
	}

	var buckets export.BucketChecker
	if c.Preflight.Buckets && !submitNoPreflight {
		client, err := storage.NewClient(ctx, creds)
		if err != nil {
			return fmt.Errorf("failed to create Cloud Storage client: %w", err)
		}
		buckets = client
	}

	var folders export.FolderFinder
	if c.Preflight.DriveFolders && !submitNoPreflight {
		client, err := drive.NewClient(ctx, creds)
		if err != nil {
			return fmt.Errorf("failed to create Drive client: %w", err)
		}
		folders = client
	}

	converter := appexport.NewConvertService(newConverter(), GetLogger())
	svc := appexport.NewSubmitService(converter, submitter, buckets, folders, GetLogger(), os.Stdout)

	return RunSubmitWithDependencies(ctx, svc, DefaultPrompter, SubmitInput{
		TaskPath:  args[0],
		Kind:      submitKind,
		Project:   project,
		Yes:       submitYes,
		Preflight: !submitNoPreflight,
	}, os.Stdin, os.Stdout)
}

// RunSubmitWithDependencies runs the submit command with injected dependencies (for testing)
func RunSubmitWithDependencies(
	ctx context.Context,
	svc *appexport.SubmitService,
	prompter Prompter,
	input SubmitInput,
	stdin io.Reader,
	output OutputWriter,
) error {
	params, err := taskfile.Load(input.TaskPath, stdin)
	if err != nil {
		return err
	}

	req, err := svc.Prepare(ctx, input.Kind, params)
	if err != nil {
		return err
	}

	printSummary(output, input.Project, req)

	if !input.Yes {
		ok, err := prompter.Confirm(fmt.Sprintf("Submit %s export to project %s?", req.Kind(), input.Project), true)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !ok {
			fmt.Fprintln(output, "Submission cancelled.")
			return nil
		}
	}

	op, err := svc.Submit(ctx, input.Project, req, input.Preflight)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Started operation: %s\n", op.Name)
	return nil
}

// printSummary shows what is about to be submitted
func printSummary(out io.Writer, project string, req export.Request) {
	fmt.Fprintf(out, "Export:     %s\n", req.Kind())
	fmt.Fprintf(out, "Project:    %s\n", project)
	if id := requestID(req); id != "" {
		fmt.Fprintf(out, "Request ID: %s\n", id)
	}

	buckets, folders := appexport.Destinations(req)
	var dest []string
	for _, b := range buckets {
		dest = append(dest, "gs://"+b)
	}
	for _, f := range folders {
		dest = append(dest, "drive:"+f)
	}
	if len(dest) > 0 {
		fmt.Fprintf(out, "Output:     %s\n", strings.Join(dest, ", "))
	}
	fmt.Fprintln(out)
}

func requestID(req export.Request) string {
	var id *string
	switch r := req.(type) {
	case *export.ExportImageRequest:
		id = r.RequestID
	case *export.ExportTableRequest:
		id = r.RequestID
	case *export.ExportVideoRequest:
		id = r.RequestID
	case *export.ExportMapRequest:
		id = r.RequestID
	case *export.ExportVideoMapRequest:
		id = r.RequestID
	case *export.ExportClassifierRequest:
		id = r.RequestID
	}
	if id == nil {
		return ""
	}
	return *id
}
