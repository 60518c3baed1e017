package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"infobot-backend/internal/app"
	"infobot-backend/internal/chat"
	"infobot-backend/internal/config"
	"infobot-backend/internal/core"
	"infobot-backend/internal/dialogue"
	"infobot-backend/internal/session"
	logx "infobot-backend/pkg/logger"
)

var (
	answerBackend string
	remoteURL     string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "infobot",
	Short: "Talk to the PAU InfoBot from a terminal",
	Long: `Runs the InfoBot dialogue engine locally, without the HTTP server.

Unmatched questions are forwarded to the configured answer backend
(ANSWER_BACKEND, or --answer-backend).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env := core.Testing
		if verbose {
			env = core.Development
		}
		logx.Init(logx.LoggerOpts{Environment: env, Output: cmd.ErrOrStderr()})
	},
}

// chatCmd starts an interactive session
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation.

Type a number to pick one of the suggested replies. Commands:
  /reset        - forget the pending flow
  /helpful      - rate the last answer as helpful
  /not-helpful  - rate the last answer as not helpful
  /quit         - leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Wait()
		return runChat(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// askCmd answers a single message and exits
var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		turn := svc.Reply(cmd.Context(), "cli", strings.Join(args, " "))
		printTurn(cmd.OutOrStdout(), turn)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&answerBackend, "answer-backend", "", "fallback answer backend: none, http, openai or gemini")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote-url", "", "base URL of the remote answer service")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.AddCommand(chatCmd, askCmd)
}

func newService(ctx context.Context) (*chat.Service, error) {
	cfg := config.Load()
	if answerBackend != "" {
		cfg.AnswerBackend = strings.ToLower(answerBackend)
	}
	if remoteURL != "" {
		cfg.RemoteAnswerURL = remoteURL
		if answerBackend == "" {
			cfg.AnswerBackend = "http"
		}
	}
	answerer, err := app.BuildAnswerer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return chat.NewService(chat.Options{
		Store:    session.NewMemoryStore(0),
		Answerer: answerer,
		Location: dialogue.LoadLocation(cfg.Timezone),
	}), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
