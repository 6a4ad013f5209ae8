package admin

import (
	"context"
	"fmt"

	"ticketdesk/internal/platform/net/http/bind"
	cdomain "ticketdesk/internal/services/api/comments/domain"
	tdomain "ticketdesk/internal/services/api/tickets/domain"
)

type seedTicket struct {
	body     tdomain.CreateBody
	status   tdomain.Status
	comments []cdomain.CreateBody
}

var seedData = []seedTicket{
	{
		body: tdomain.CreateBody{
			Title:       "Cannot log in to dashboard",
			Description: "When I enter my credentials and click Sign In, the page just refreshes and I stay on the login screen. No error message is shown. This started happening after the last update.",
			Priority:    tdomain.PriorityHigh,
		},
		status: tdomain.StatusOpen,
		comments: []cdomain.CreateBody{
			{AuthorName: "Support Agent", Message: "We are looking into the login issue. Can you confirm whether you use 2FA?"},
			{AuthorName: "John Doe", Message: "Yes, I have 2FA enabled. I receive the code but after entering it the same thing happens."},
		},
	},
	{
		body: tdomain.CreateBody{
			Title:       "Export report shows wrong date range",
			Description: "I selected January 1-31 in the date picker for the monthly report, but the exported CSV contains data from December. Please fix the export logic to respect the selected range.",
			Priority:    tdomain.PriorityMedium,
		},
		status: tdomain.StatusInProgress,
		comments: []cdomain.CreateBody{
			{AuthorName: "Dev Team", Message: "The bug is in the timezone conversion. We will ship a fix in the next release."},
		},
	},
	{
		body: tdomain.CreateBody{
			Title:       "Suggestion: dark mode for the app",
			Description: "It would be great to have a dark theme option in settings. Many users work in low-light environments and prefer dark backgrounds. Consider adding a toggle in the user preferences.",
			Priority:    tdomain.PriorityLow,
		},
		status: tdomain.StatusResolved,
	},
}

// SeedResult counts what Seed created
type SeedResult struct {
	Tickets  int
	Comments int
}

// Seed creates the sample tickets and comments through the services
// tickets are created OPEN and moved to their status with an update
func Seed(ctx context.Context, tickets tdomain.ServicePort, comments cdomain.ServicePort) (SeedResult, error) {
	var res SeedResult
	for _, st := range seedData {
		body := st.body
		if err := bind.Validate(&body); err != nil {
			return res, fmt.Errorf("seed ticket %q: %w", body.Title, err)
		}
		t, err := tickets.Create(ctx, body)
		if err != nil {
			return res, fmt.Errorf("create ticket %q: %w", body.Title, err)
		}
		res.Tickets++

		if st.status != t.Status {
			status := st.status
			if _, err := tickets.Update(ctx, t.ID, tdomain.Patch{Status: &status}); err != nil {
				return res, fmt.Errorf("set status of %q: %w", body.Title, err)
			}
		}

		for _, c := range st.comments {
			if _, err := comments.Add(ctx, t.ID, c); err != nil {
				return res, fmt.Errorf("comment on %q: %w", body.Title, err)
			}
			res.Comments++
		}
	}
	return res, nil
}
