// cli.go - command line interface for the wolf compiler
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
)

const versionString = "wolf 0.1.0"

// NewRootCommand builds the wolf command tree:
//
//	wolf compile <file> [-o output]
//	wolf run <file> [args...]
//	wolf version
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wolf",
		Short:         "Compiler for the wolf language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			VerboseMode = env.Bool("WOLF_VERBOSE")
		},
	}

	var outputPath string
	compileCmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a source file to an executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executablePath, err := CompileFile(args[0], Options{OutputPath: outputPath})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Compilation failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Executable written to %s\n", executablePath)
			return nil
		},
	}
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "executable output path")

	runCmd := &cobra.Command{
		Use:   "run <file> [args...]",
		Short: "Compile a source file and run the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executablePath, err := CompileFile(args[0], Options{})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Compilation failed: %v\n", err)
				return err
			}
			if err := runExecutable(executablePath, args[1:]); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Run failed: %v\n", err)
				return err
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString)
		},
	}

	root.AddCommand(compileCmd, runCmd, versionCmd)
	return root
}
