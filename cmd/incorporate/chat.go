package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/internal/presentation/tui"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/runner"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the questionnaire in the terminal",
	Long: `Starts an interactive chat. Answer with the option number or its id; on
multi-select questions toggle options and type "done". Type "quit" to leave.
With --session an unfinished conversation from the configured store is resumed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a, err := newApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		sessionID, _ := cmd.Flags().GetString("session")
		skipLead, _ := cmd.Flags().GetBool("no-lead")
		interactive := tui.IsInteractive(os.Stdin) && tui.IsInteractive(os.Stdout)

		opts := []runner.Option{
			runner.WithLogger(a.logger),
			runner.WithStore(a.store),
			runner.WithSessionID(sessionID),
			runner.WithHeadless(!interactive),
		}
		if interactive {
			tui.PrintBanner(os.Stdout, strings.TrimSpace(incorporate.Version))
			opts = append(opts,
				runner.WithPacing(a.cfg.Chat.Pacing),
				runner.WithRenderer(tui.NewRenderer(a.cfg.Chat.WordWrap)),
			)
		}
		r := runner.NewRunner(opts...)

		var initial *domain.Session
		if sessionID != "" {
			initial, err = a.sessions.Load(ctx, sessionID)
			if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
		}

		sess, err := r.Run(ctx, a.engine, initial)
		if errors.Is(err, runner.ErrAbandoned) || errors.Is(err, context.Canceled) {
			fmt.Println("\nBye!")
			return nil
		}
		if err != nil {
			return err
		}
		if skipLead {
			return nil
		}

		fmt.Println("\nLeave your details and an advisor will contact you.")
		contact, err := r.PromptContact(ctx)
		if errors.Is(err, runner.ErrAbandoned) {
			return nil
		}
		if err != nil {
			return err
		}
		lead, err := a.leads.Capture(ctx, sess, contact)
		if err != nil {
			return fmt.Errorf("we could not send your details, please try again later: %w", err)
		}
		fmt.Printf("Thanks %s, your reference is %s.\n", contact.Name, lead.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Session ID to start or resume")
	chatCmd.Flags().Bool("no-lead", false, "Skip the contact form after completion")
}
