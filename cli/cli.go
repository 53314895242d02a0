package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/firefly-engine/firefly/core"
	"github.com/firefly-engine/firefly/logger"
	"github.com/firefly-engine/firefly/proc"
)

// Version of the firefly CLI.
const Version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:   "firefly",
	Short: "Firefly is a CLI tool for provisioning Firefly game engine projects",
	Long:  `Firefly is an interactive wizard that sets up a Firefly game engine project: it edits the manifest, installs tooling, writes starter files, and can bundle the desktop player runtime for Linux, macOS and Windows.`,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Run the interactive project wizard",
	Run: func(cmd *cobra.Command, args []string) {
		flags, err := parseNewFlags(cmd)
		if err != nil {
			fmt.Printf("Error parsing flags: %v\n", err)
			os.Exit(1)
		}

		model, err := newWizardModel(flags)
		if err != nil {
			fmt.Printf("Error initializing wizard: %v\n", err)
			os.Exit(1)
		}

		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running program: %v\n", err)
			os.Exit(1)
		}
	},
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Rebuild and repackage an already-bundled project",
	Run: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			fmt.Printf("Error parsing flags: %v\n", err)
			os.Exit(1)
		}

		cwd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		if name == "" {
			name = filepath.Base(cwd)
		}

		log := logger.Get()
		log.Info(fmt.Sprintf("Rebuilding bundle for %s", name))
		if err := runBundleRebuild(context.Background(), proc.NewExecRunner(), cwd, name); err != nil {
			fmt.Printf("Bundle rebuild failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Bundle rebuilt successfully.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the firefly CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("firefly %s (player SDK %s)\n", Version, core.SDKVersion)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(versionCmd)

	newCmd.Flags().StringP("name", "n", "", "The name of the project to generate. Also used as the main source file name")
	bundleCmd.Flags().StringP("name", "n", "", "The project name passed to the platform bundler")
}

type newFlags struct {
	name string
}

func parseNewFlags(cmd *cobra.Command) (newFlags, error) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return newFlags{}, err
	}

	return newFlags{
		name: name,
	}, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
