package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ee-export/infrastructure/config"
	"ee-export/infrastructure/logging"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing the cloud project, how to
authenticate with Google, and which output checks run before submitting.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to ee-export setup!")
	fmt.Println()

	cfg := &config.Config{}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := promptPreflight(prompter, cfg); err != nil {
		return err
	}

	if err := promptLogging(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	project, err := prompter.Input("Cloud project to run exports in?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if project == "" {
		return fmt.Errorf("project is required")
	}
	cfg.Google.Project = project

	serviceAccount, err := prompter.Input("Path to service account key file? (empty to use OAuth or default credentials)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if serviceAccount != "" {
		cfg.Google.ServiceAccountFile = serviceAccount
		return nil
	}

	credentials, err := prompter.Input("Path to OAuth client credentials file? (empty to use default credentials)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if credentials == "" {
		return nil
	}
	cfg.Google.CredentialsFile = credentials

	token, err := prompter.Input("Where should the OAuth token be cached?", "token.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if token == "" {
		token = "token.json"
	}
	cfg.Google.TokenFile = token

	return nil
}

func promptPreflight(prompter Prompter, cfg *config.Config) error {
	buckets, err := prompter.Confirm("Check that output buckets exist before submitting?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Preflight.Buckets = buckets

	folders, err := prompter.Confirm("Check Drive output folders before submitting?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Preflight.DriveFolders = folders

	return nil
}

func promptLogging(prompter Prompter, cfg *config.Config) error {
	level, err := prompter.Input("Log level (debug, info, warn, error)?", "info")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if level == "" {
		level = "info"
	}
	level = strings.ToLower(level)
	if _, err := logging.ParseLevel(level); err != nil {
		return err
	}
	cfg.Logging.Level = level
	return nil
}
