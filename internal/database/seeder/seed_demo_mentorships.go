package seeder

import (
	"context"
	"fmt"

	"mentorlink/internal/database"
)

// DemoMentorshipSeeder links the demo accounts with one request in each
// observable state, plus a session on the accepted one.
type DemoMentorshipSeeder struct{}

func (DemoMentorshipSeeder) Name() string { return "demo_mentorships" }

func (DemoMentorshipSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "mentorship_requests",
		"id", "mentee_id", "mentor_id", "proposal", "preferred_time", "status"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "sessions",
		"id", "request_id", "meeting_link", "scheduled_time", "status"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	requests := []struct {
		MenteeEmail string
		MentorEmail string
		Proposal    string
		Status      string
	}{
		{
			MenteeEmail: "dina.mentee@example.com",
			MentorEmail: "raka.mentor@example.com",
			Proposal:    "I want to move from QA into backend engineering and would value guidance on Go and Postgres.",
			Status:      "accepted",
		},
		{
			MenteeEmail: "bayu.mentee@example.com",
			MentorEmail: "sari.mentor@example.com",
			Proposal:    "Looking for advice on breaking into infrastructure teams as a fresh graduate.",
			Status:      "pending",
		},
	}

	for _, r := range requests {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO mentorship_requests (id, mentee_id, mentor_id, proposal, preferred_time, status)
			 SELECT gen_random_uuid(), mentee.id, mentor.id, $3, now() + interval '7 days', $4
			 FROM profiles mentee
			 JOIN users mu ON mu.id = mentee.user_id AND mu.email = $1
			 CROSS JOIN profiles mentor
			 JOIN users tu ON tu.id = mentor.user_id AND tu.email = $2
			 ON CONFLICT ON CONSTRAINT uniq_mentorship_requests_pair DO NOTHING`,
			r.MenteeEmail,
			r.MentorEmail,
			r.Proposal,
			r.Status,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO sessions (id, request_id, meeting_link, scheduled_time, status)
		 SELECT gen_random_uuid(), r.id, 'https://meet.example.com/demo-kickoff', now() + interval '7 days', 'scheduled'
		 FROM mentorship_requests r
		 WHERE r.status = 'accepted'
		 ON CONFLICT (request_id) DO NOTHING`,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
