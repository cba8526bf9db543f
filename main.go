package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivemoreminix/notepad/config"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type options struct {
	configPath string
	logFile    string
	verbose    int
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "notepad [file]",
		Short: "A small text editor for the terminal",
		Long: `Notepad edits one text file at a time, with line numbers, a status bar,
cut/copy/paste and syntax highlighting for Python and Go. Colors and the font
are read from a YAML configuration file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "YAML file with the font and colors")
	cmd.Flags().StringVar(&opts.logFile, "log-file", filepath.Join(os.TempDir(), "notepad.log"), "file the log is written to")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "log more detail (repeatable)")
	return cmd
}

func run(cmd *cobra.Command, opts options, args []string) error {
	// The terminal belongs to the editor, so the log goes to a file
	commonlog.Configure(1+opts.verbose, &opts.logFile)

	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer s.Fini() // Useful for handling panics
	s.EnableMouse()

	clip, err := NewClipboard(ClipExternal)
	if err != nil {
		log.Warningf("system clipboard unavailable, using an internal one: %s", err.Error())
	}

	app := NewApp(s, fsys, cfg, clip)
	if len(args) > 0 {
		app.report(app.OpenOrCreate(args[0]))
	}

	log.Infof("started with clipboard %s", clip.Method())
	app.Run()
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
