package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emberfield/leads"
)

var (
	estimateJobValue string
	estimateLeads    string
	estimateMissed   string

	estimateSubmit bool
	contact        leads.Contact
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate monthly revenue lost to missed leads",
	Long: `Computes leads/week x 4 x missed% x average job value x 50% close rate.
With --submit the result is posted to the configured webhook and the booking
link is printed; a failed submission is logged and never blocks the link.`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateJobValue, "job-value", "", "Average job value in dollars")
	estimateCmd.Flags().StringVar(&estimateLeads, "leads", "", "Leads per week")
	estimateCmd.Flags().StringVar(&estimateMissed, "missed", "", "Percent of leads missed (0-100)")
	estimateCmd.Flags().BoolVar(&estimateSubmit, "submit", false, "Submit the estimate as a lead")
	estimateCmd.Flags().StringVar(&contact.Name, "name", "", "Contact name (required with --submit)")
	estimateCmd.Flags().StringVar(&contact.Email, "email", "", "Contact email (required with --submit)")
	estimateCmd.Flags().StringVar(&contact.BusinessName, "business", "", "Business name (required with --submit)")
	estimateCmd.Flags().StringVar(&contact.Phone, "phone", "", "Phone number (optional)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	in := leads.ParseInputs(estimateJobValue, estimateLeads, estimateMissed)
	if err := in.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, in.Summary())

	if !estimateSubmit {
		return nil
	}

	if err := contact.Validate(); err != nil {
		return err
	}

	client := leads.NewClient(cfg.Leads, logger)
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Leads.Timeout)
	defer cancel()

	lead := leads.NewLead(contact, in, cfg.Leads.Source, time.Now())
	fmt.Fprintln(out, "Book your diagnostic call:", client.SubmitAndRedirect(ctx, lead))
	return nil
}
