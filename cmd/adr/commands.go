package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/starford/adrkit/internal"
	"github.com/starford/adrkit/internal/adr"
	"github.com/starford/adrkit/internal/prompt"
	pkgconfig "github.com/starford/adrkit/pkg/config"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "adr",
		Usage:   "Create and maintain Architecture Decision Records",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "adr.yaml",
				Value:       "adr.yaml",
				Sources:     cli.EnvVars("ADR_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the ADR directory and record if missing",
				Action: withApp(initAction),
			},
			{
				Name:  "new",
				Usage: "Create the next ADR (asks interactively when --title is omitted)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "ADR title"},
					&cli.StringFlag{Name: "supersedes", Aliases: []string{"s"}, Usage: "Filename of the ADR this one replaces"},
				},
				Action: withApp(newAction),
			},
			{
				Name:   "next",
				Usage:  "Print the number the next ADR will receive",
				Action: withApp(nextAction),
			},
			{
				Name:  "list",
				Usage: "List ADRs in number order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Only ADRs whose title or body contains this text"},
				},
				Action: withApp(listAction),
			},
			{
				Name:      "link",
				Usage:     "Append a relationship note to an ADR and its record section",
				ArgsUsage: "TARGET NOTE",
				Action:    withApp(linkAction),
			},
			{
				Name:   "sync",
				Usage:  "Rebuild the sidecar index from the ADR directory",
				Action: withApp(syncAction),
			},
			{
				Name:  "serve",
				Usage: "Serve the HTTP API with live updates",
				Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
					return app.Serve(ctx)
				}),
			},
			{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio",
				Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
					return app.ServeMCP(ctx)
				}),
			},
		},
	}
}

type appAction func(ctx context.Context, cmd *cli.Command, app *internal.App) error

// withApp loads the config, wires the application and closes it after
// the action returns.
func withApp(action appAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Bool("no-color") {
			color.NoColor = true
		}

		cfg := internal.NewDefaultConfig()
		if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		app, err := internal.New(
			internal.WithConfig(cfg),
			internal.WithLogOutput(cmd.Root().ErrWriter),
			internal.WithVersion(version),
		)
		if err != nil {
			return fmt.Errorf("app init error: %w", err)
		}
		defer app.Close()

		return action(ctx, cmd, app)
	}
}

func out(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func initAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	svc := app.Service()
	if err := svc.Init(ctx); err != nil {
		return err
	}
	layout := svc.Layout()
	fmt.Fprintf(out(cmd), "%s %s and %s\n", green("Initialized"), layout.Dir, layout.Record)
	return nil
}

func newAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	svc := app.Service()

	var answers *adr.Answers
	if title := cmd.String("title"); title != "" {
		target := cmd.String("supersedes")
		answers = &adr.Answers{Title: title, Supersedes: target != "", SupersededTarget: target}
	} else {
		candidates, err := svc.Candidates(ctx)
		if err != nil {
			return err
		}
		answers, err = prompt.Ask(cmd.Root().Reader, out(cmd), candidates)
		if err != nil {
			return err
		}
	}

	res, err := svc.Create(ctx, answers)
	if err != nil {
		return err
	}

	w := out(cmd)
	fmt.Fprintf(w, "%s %s\n", green("Created"), res.Path)
	if res.Superseded != "" {
		if res.RecordLinked {
			fmt.Fprintf(w, "%s %s\n", green("Superseded"), res.Superseded)
		} else {
			fmt.Fprintf(w, "%s %s was marked superseded but has no section in %s\n",
				yellow("Warning:"), res.Superseded, svc.Layout().Record)
		}
	}
	return nil
}

func nextAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	n, err := app.Service().Next(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out(cmd), n)
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	svc := app.Service()
	if err := svc.Reindex(ctx); err != nil {
		return err
	}
	rows, err := svc.List(ctx, cmd.String("query"))
	if err != nil {
		return err
	}

	w := out(cmd)
	for _, r := range rows {
		line := fmt.Sprintf("%s  %s", adr.FormatNumber(r.Number), r.Title)
		if len(r.SupersededBy) > 0 {
			line += "  " + faint("superseded by "+strings.Join(r.SupersededBy, ", "))
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func linkAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("link: expected TARGET and NOTE, got %d arguments", cmd.NArg())
	}
	target, note := cmd.Args().Get(0), cmd.Args().Get(1)

	svc := app.Service()
	linked, err := svc.Link(ctx, target, note)
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprintf(w, "%s %s\n", green("Linked"), target)
	if !linked {
		fmt.Fprintf(w, "%s no section for %s in %s\n", yellow("Warning:"), target, svc.Layout().Record)
	}
	return nil
}

func syncAction(ctx context.Context, cmd *cli.Command, app *internal.App) error {
	svc := app.Service()
	if err := svc.Reindex(ctx); err != nil {
		return err
	}
	rows, err := svc.List(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "%s %d ADRs\n", green("Indexed"), len(rows))
	return nil
}
