package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
)

// defaultMaxGrant mirrors the HTTP admin grant bound.
const defaultMaxGrant = 10000

func newBalanceCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "balance EMAIL",
		Short: "Show a user's remaining, granted and consumed credits",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			user, err := a.lookupUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summary, err := a.ledger.Summary(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user:      %s (%s)\n", user.Email, user.ID)
			fmt.Fprintf(out, "remaining: %d\n", summary.Remaining)
			fmt.Fprintf(out, "granted:   %d\n", summary.TotalGranted)
			fmt.Fprintf(out, "consumed:  %d\n", summary.TotalConsumed)
			return nil
		}),
	}
}

func newGrantCmd(open opener) *cobra.Command {
	var (
		scene       string
		description string
		expiresDays int
	)
	cmd := &cobra.Command{
		Use:   "grant EMAIL CREDITS",
		Short: "Grant credits to a user",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			var amount int64
			if _, err := fmt.Sscan(args[1], &amount); err != nil {
				return fmt.Errorf("invalid credits %q", args[1])
			}
			limit := a.cfg.MaxAdminGrant
			if limit <= 0 {
				limit = defaultMaxGrant
			}
			if amount < 1 || amount > limit {
				return fmt.Errorf("credits must be between 1 and %d", limit)
			}
			switch scene {
			case models.SceneGift, models.SceneAward, models.ScenePayment:
			default:
				return fmt.Errorf("unsupported scene %q", scene)
			}

			user, err := a.lookupUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			grant := credits.Grant{
				UserID:      user.ID,
				UserEmail:   user.Email,
				Credits:     amount,
				Scene:       scene,
				Description: description,
				Metadata:    map[string]interface{}{"granted_by": "cli"},
			}
			if expiresDays > 0 {
				expires := time.Now().UTC().AddDate(0, 0, expiresDays)
				grant.ExpiresAt = &expires
			}
			entry, err := a.ledger.CreateCredit(cmd.Context(), grant)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted %d credits to %s (%s), balance %d\n",
				amount, user.Email, entry.TransactionNo, entry.RemainingCredits)
			return nil
		}),
	}
	cmd.Flags().StringVar(&scene, "scene", models.SceneAward, "Grant scene: GIFT, AWARD or PAYMENT")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description stored on the entry")
	cmd.Flags().IntVar(&expiresDays, "expires-in-days", 0, "Expire the grant after this many days (0 never expires)")
	return cmd
}

func newHistoryCmd(open opener) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "history EMAIL",
		Short: "List a user's ledger entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			user, err := a.lookupUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entries, total, err := a.ledger.History(cmd.Context(), user.ID, page, limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tTYPE\tSCENE\tCREDITS\tBALANCE\tEXPIRES")
			for _, e := range entries {
				expires := "-"
				if e.ExpiresAt != nil {
					expires = e.ExpiresAt.Format(time.DateOnly)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					e.CreatedAt.Format(time.DateTime), e.TransactionType, e.TransactionScene,
					e.Credits, e.RemainingCredits, expires)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d entries\n", len(entries), total)
			return nil
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Entries per page")
	return cmd
}
