// Package main provides an interactive chat harness for exercising the
// agent loop against a live Ollama backend.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/iterbot/iterbot/agents/react"
	"github.com/iterbot/iterbot/config"
	"github.com/iterbot/iterbot/models"
	"github.com/iterbot/iterbot/tools"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	cfg, source := loadConfig()

	// Create log directory and file
	logDir := ".logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create log directory: %w", err)
	}

	logFile, err := os.Create(
		filepath.Join(logDir, "cli_chat.log"))
	if err != nil {
		return fmt.Errorf(
			"failed to create log file: %w", err)
	}
	defer logFile.Close()

	logger := zerolog.New(logFile).
		With().Timestamp().Logger()

	model, err := models.NewOllama(cfg.Model, cfg.OllamaURL)
	if err != nil {
		return fmt.Errorf(
			"failed to create ollama model: %w", err)
	}

	agent := react.NewAgent(models.NewLogging(model, logger)).
		WithMaxIterations(cfg.MaxIterations).
		WithMaxCustomPromptSize(cfg.MaxCustomPromptSize).
		WithLoopThreshold(cfg.LoopThreshold).
		WithVerboseWriter(&ColoredWriter{out: os.Stdout}).
		WithLogger(logger)
	if cfg.CustomSystemPrompt != "" {
		agent.SetCustomSystemPrompt(cfg.CustomSystemPrompt)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: colorCyan + colorBold +
			"You: " + colorReset,
		HistoryFile: filepath.Join(logDir, "cli_history"),
	})
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	printBanner(cfg, source)

	chat := &chatSession{
		agent:   agent,
		cfg:     cfg,
		verbose: cfg.Verbose,
	}
	return chat.loop(rl)
}

// loadConfig resolves the harness configuration: an explicit path in
// ITERBOT_CONFIG wins, then the standard file locations, then the
// built-in defaults. A file that fails to load is reported and replaced
// by the defaults.
func loadConfig() (config.Config, string) {
	path := os.Getenv("ITERBOT_CONFIG")
	if path == "" {
		var ok bool
		if path, ok = config.FindConfig(); !ok {
			return config.Default(), "defaults"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: %v; using defaults.%s\n",
			colorYellow, err, colorReset)
		return config.Default(), "defaults"
	}
	return cfg, path
}

// chatSession holds the state the slash commands mutate between turns.
type chatSession struct {
	agent    *react.Agent
	cfg      config.Config
	verbose  bool
	searchOn bool
}

func (s *chatSession) loop(rl *readline.Instance) error {
	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt ||
				err == io.EOF {
				fmt.Printf("\n%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := s.command(input); quit {
				fmt.Printf("%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			continue
		}

		s.send(input)
	}
}

// send runs one agent turn. SIGINT while the agent is working cancels
// the run instead of killing the harness.
func (s *chatSession) send(input string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Printf(
				"\n%sReceived interrupt, "+
					"cancelling...%s\n",
				colorYellow, colorReset)
			cancel()
		case <-ctx.Done():
		}
	}()

	answer, err := s.agent.Run(ctx, input, s.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr,
			"\n%sError: %v%s\n",
			colorRed, err, colorReset)
		return
	}

	fmt.Printf("%s%sAgent:%s %s\n\n",
		colorBold, colorGreen, colorReset, answer)
}

// command handles a slash command. It reports whether the session
// should end.
func (s *chatSession) command(input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/tools":
		fmt.Printf("%s%sRegistered tools:%s\n",
			colorBold, colorYellow, colorReset)
		for i, t := range s.agent.Tools() {
			if t.Description == "" {
				fmt.Printf("  %s%d.%s %s%s%s\n",
					colorCyan, i+1, colorReset,
					colorWhite, t.Name, colorReset)
				continue
			}
			fmt.Printf("  %s%d.%s %s%s%s - %s\n",
				colorCyan, i+1, colorReset,
				colorWhite, t.Name, colorReset,
				t.Description)
		}

	case "/prompt":
		text := strings.TrimSpace(rest)
		if text == "" {
			fmt.Printf(
				"%sUsage: /prompt <instructions>%s\n",
				colorRed, colorReset)
			break
		}
		s.agent.SetCustomSystemPrompt(text)
		stored := s.agent.CustomSystemPrompt()
		if len(stored) < len(text) {
			fmt.Printf(
				"%sCustom prompt set (truncated "+
					"to %d characters).%s\n",
				colorYellow, len([]rune(stored)),
				colorReset)
			break
		}
		fmt.Printf("%sCustom prompt set.%s\n",
			colorGreen, colorReset)

	case "/noprompt":
		s.agent.RemoveCustomSystemPrompt()
		fmt.Printf("%sCustom prompt removed.%s\n",
			colorGreen, colorReset)

	case "/verbose":
		s.verbose = !s.verbose
		fmt.Printf("%sVerbose output %s.%s\n",
			colorGreen, onOff(s.verbose), colorReset)

	case "/search":
		s.searchOn = !s.searchOn
		if s.searchOn {
			search := tools.NewSearch(s.cfg.SearXNGURL)
			s.agent.RegisterTool(search.WebSearch())
			fmt.Printf(
				"%sWeb search enabled (%s).%s\n",
				colorGreen, s.cfg.SearXNGURL,
				colorReset)
			break
		}
		s.agent.RemoveTool("search_web")
		fmt.Printf("%sWeb search disabled.%s\n",
			colorGreen, colorReset)

	default:
		printCommands()
	}
	return false
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func printBanner(cfg config.Config, source string) {
	fmt.Printf("%s%sIterbot Chat%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow,
		strings.Repeat("=", 12),
		colorReset)
	fmt.Printf("%sModel:  %s via %s%s\n",
		colorDim, cfg.Model, cfg.OllamaURL, colorReset)
	fmt.Printf("%sConfig: %s%s\n",
		colorDim, source, colorReset)
	fmt.Println()
	printCommands()
	fmt.Println()
}

func printCommands() {
	fmt.Printf("%sCommands:%s\n", colorBold, colorReset)
	fmt.Printf("  %s/tools%s          "+
		"list the registered tools\n",
		colorCyan, colorReset)
	fmt.Printf("  %s/prompt <text>%s  "+
		"set additional system prompt instructions\n",
		colorCyan, colorReset)
	fmt.Printf("  %s/noprompt%s       "+
		"remove the additional instructions\n",
		colorCyan, colorReset)
	fmt.Printf("  %s/verbose%s        "+
		"toggle the thought/action/observation stream\n",
		colorCyan, colorReset)
	fmt.Printf("  %s/search%s         "+
		"toggle the web search tool\n",
		colorCyan, colorReset)
	fmt.Printf("  %s/quit%s           exit\n",
		colorCyan, colorReset)
}

// ColoredWriter colorizes the agent's verbose stream based on the
// leading label of each emitted line.
type ColoredWriter struct {
	out *os.File
}

func (c *ColoredWriter) Write(p []byte) (n int, err error) {
	text := string(p)

	switch {
	case strings.HasPrefix(text, "Thought: "):
		return fmt.Fprintf(c.out,
			"%s%s%s",
			colorDim, text, colorReset)

	case strings.HasPrefix(text, "Action: "),
		strings.HasPrefix(text, "Action Input: "):
		return fmt.Fprintf(c.out,
			"%s%s%s",
			colorBlue, text, colorReset)

	case strings.HasPrefix(text, "Observation: "):
		return fmt.Fprintf(c.out,
			"%s%s%s",
			colorMagenta, text, colorReset)

	case strings.HasPrefix(text, "Final Answer: "):
		return fmt.Fprintf(c.out,
			"%s%s%s%s",
			colorBold, colorGreen, text, colorReset)

	default:
		return c.out.Write(p)
	}
}
