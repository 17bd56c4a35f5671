package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	appexport "ee-export/application/export"
	"ee-export/infrastructure/taskfile"

	"github.com/spf13/cobra"
)

var convertKind string

var convertCmd = &cobra.Command{
	Use:   "convert TASKFILE",
	Short: "Print the export request for a legacy task",
	Long: `Convert a legacy export task file into a Cloud API export request and
print it as JSON. The task file may be JSON or YAML; use - to read JSON from stdin.

The request kind comes from --kind, or from the task's "type" key
(EXPORT_IMAGE, EXPORT_FEATURES, EXPORT_VIDEO, EXPORT_TILES, EXPORT_VIDEO_MAP,
EXPORT_CLASSIFIER) when the flag is omitted.

Example:
  ee-export convert --kind table roads.json
  cat task.json | ee-export convert -`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertKind, "kind", "", "Request kind: image, table, video, map, videomap or classifier")
}

func runConvert(cmd *cobra.Command, args []string) error {
	svc := appexport.NewConvertService(newConverter(), GetLogger())
	return RunConvertWithDependencies(cmd.Context(), svc, args[0], convertKind, os.Stdin, os.Stdout)
}

// RunConvertWithDependencies runs the convert command with injected dependencies (for testing)
func RunConvertWithDependencies(
	ctx context.Context,
	svc *appexport.ConvertService,
	taskPath string,
	kind string,
	stdin io.Reader,
	output OutputWriter,
) error {
	params, err := taskfile.Load(taskPath, stdin)
	if err != nil {
		return err
	}

	req, err := svc.Convert(ctx, kind, params)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	fmt.Fprintln(output, string(b))
	return nil
}
