package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/drsarcastic/pkg/appdir"
	"github.com/germanamz/drsarcastic/pkg/engine"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "ask":
			askCmd := flag.NewFlagSet("ask", flag.ExitOnError)
			askCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: drsarcastic ask [flags] <text>\n\nSend one message and print the reply. Reads stdin when no text is given.\n\nFlags:\n")
				askCmd.PrintDefaults()
			}
			envFile := askCmd.String("env", ".env", "path to .env file (ignored if missing)")
			dir := askCmd.String("dir", "", "path to the app directory (default: $DRSARCASTIC_DIR or .drsarcastic)")
			lang := askCmd.String("lang", "", "language to answer in (default: detected)")
			render := askCmd.Bool("render", false, "render the reply as terminal markdown")
			_ = askCmd.Parse(os.Args[2:])

			text := strings.Join(askCmd.Args(), " ")
			if text == "" {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					fail(err)
				}
				text = string(b)
			}

			if err := runAsk(*envFile, *dir, *lang, text, *render); err != nil {
				fail(err)
			}

			return
		case "language":
			langCmd := flag.NewFlagSet("language", flag.ExitOnError)
			langCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: drsarcastic language [flags] [en|fr]\n\nSet the preferred language. Without an argument an interactive picker is shown.\n\nFlags:\n")
				langCmd.PrintDefaults()
			}
			envFile := langCmd.String("env", ".env", "path to .env file (ignored if missing)")
			dir := langCmd.String("dir", "", "path to the app directory (default: $DRSARCASTIC_DIR or .drsarcastic)")
			_ = langCmd.Parse(os.Args[2:])

			if err := loadDotEnv(*envFile); err != nil {
				fail(err)
			}

			if err := runLanguage(appdir.New(resolveDir(*dir, os.Getenv(engine.EnvDir))), langCmd.Arg(0)); err != nil {
				fail(err)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: drsarcastic [flags]\n       drsarcastic <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  ask       Send one message and print the reply\n  language  Set the preferred language\n")
	}

	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	dir := flag.String("dir", "", "path to the app directory (default: $DRSARCASTIC_DIR or .drsarcastic)")
	lang := flag.String("lang", "", "language to start with (default: detected)")
	flag.Parse()

	if err := run(*envFile, *dir, *lang); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// resolveDir prefers the flag over the environment.
func resolveDir(flagDir, envDir string) string {
	if flagDir != "" {
		return flagDir
	}
	return envDir
}

// setup is shared by the chat and ask commands. The returned cleanup stops
// the event log and closes the log file.
func setup(ctx context.Context, envFile, dir string) (*engine.Engine, func(), error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := engine.LoadConfig(os.Getenv)
	if err != nil {
		return nil, nil, err
	}
	cfg.Dir = resolveDir(dir, cfg.Dir)

	log, closeLog, err := openLogger(appdir.New(cfg.Dir), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	stopEvents := startEventLog(ctx, eng.Events(), log)

	return eng, func() {
		stopEvents()
		_ = closeLog()
	}, nil
}

func run(envFile, dir, lang string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eng, cleanup, err := setup(ctx, envFile, dir)
	if err != nil {
		return err
	}
	defer cleanup()

	if lang == "" {
		lang = eng.DetectLanguage(os.Getenv)
	}

	sess := eng.NewSession(lang)

	model := newAppModel(ctx, eng, sess, eng.Logger())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func runAsk(envFile, dir, lang, text string, render bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eng, cleanup, err := setup(ctx, envFile, dir)
	if err != nil {
		return err
	}
	defer cleanup()

	if lang == "" {
		lang = eng.DetectLanguage(os.Getenv)
	}

	sess := eng.NewSession(lang)

	reply, err := ask(ctx, sess, text)
	if reply != "" {
		if render {
			initMarkdownRenderer(0)
			reply = renderMarkdown(reply)
		}
		fmt.Println(reply)
	}

	return err
}

// errEmptyMessage is returned by ask for blank input.
var errEmptyMessage = errors.New("nothing to send")

// ask runs one turn. On failure the localized fallback text is returned
// together with the cause.
func ask(ctx context.Context, sess *engine.Session, text string) (string, error) {
	turn, ok := sess.Begin(text)
	if !ok {
		return "", errEmptyMessage
	}

	reply, err := turn.Run(ctx)
	m := sess.Finish(turn, reply, err)

	return m.Text, err
}
