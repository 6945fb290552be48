// Package store persists the voting roster, the ballot question and the
// votes cast against it.
//
// Two backends implement [Store]:
//   - FileStore: JSON documents in a data directory, for single-instance use
//   - MongoStore: MongoDB collections, for deployments sharing one database
//
// Each employee may vote once. Employee IDs are matched trimmed and
// case-insensitively against the imported roster, and the stored spelling
// becomes the vote's key.
//
// # Usage
//
//	s, err := store.NewFileStore("data")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.ReplaceContacts(ctx, store.CleanContacts(raw))
//	vote, err := s.CastVote(ctx, "E-17", "Alice")
//	universe, events, err := store.Ballot(ctx, s)
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/votecloud/votecloud/pkg/errors"
)

// UnknownName replaces missing contact names on import.
const UnknownName = "Unknown"

// MinNumberDigits is the exclusive lower bound on digits a phone number
// needs to survive CleanContacts.
const MinNumberDigits = 5

// Contact is one employee on the roster.
type Contact struct {
	ID         string `json:"id" bson:"_id"`
	Name       string `json:"name" bson:"name"`
	Number     string `json:"number" bson:"number"`
	EmployeeID string `json:"employeeId" bson:"employee_id"`
}

// RawContact is a roster row as uploaded, before cleaning. Number and
// EmployeeID arrive as strings or JSON numbers depending on the spreadsheet
// export that produced them.
type RawContact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Number     any    `json:"number"`
	EmployeeID any    `json:"employeeId"`
}

// Question is a ballot question shown to voters.
type Question struct {
	ID   string `json:"id" bson:"_id"`
	Text string `json:"text" bson:"text"`
	Type string `json:"type" bson:"type"`
}

// Vote records one employee's choice.
type Vote struct {
	EmployeeID string    `json:"employeeId" bson:"_id"`
	VotedFor   string    `json:"votedFor" bson:"voted_for"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Store is the interface for roster and ballot storage backends.
type Store interface {
	// Contacts returns the roster in import order.
	Contacts(ctx context.Context) ([]Contact, error)

	// ReplaceContacts discards the roster and stores contacts in its place.
	// Votes already cast are kept.
	ReplaceContacts(ctx context.Context, contacts []Contact) error

	// Questions returns the saved questions.
	Questions(ctx context.Context) ([]Question, error)

	// SaveQuestions replaces the saved questions.
	SaveQuestions(ctx context.Context, questions []Question) error

	// Votes returns every vote ordered by timestamp.
	Votes(ctx context.Context) ([]Vote, error)

	// CastVote records a vote for the roster entry whose employee ID matches
	// employeeID. It fails with ErrCodeInvalidVoter when no entry matches and
	// with ErrCodeAlreadyVoted when that employee has voted before.
	CastVote(ctx context.Context, employeeID, votedFor string) (Vote, error)

	// ClearVotes deletes every vote.
	ClearVotes(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// CleanContacts normalizes uploaded roster rows. Missing IDs get a random
// UUID, missing names become UnknownName, phone numbers keep digits only,
// and rows whose number has MinNumberDigits digits or fewer are dropped.
func CleanContacts(raw []RawContact) []Contact {
	out := make([]Contact, 0, len(raw))
	for _, r := range raw {
		c := Contact{
			ID:         strings.TrimSpace(r.ID),
			Name:       strings.TrimSpace(r.Name),
			Number:     digits(scalar(r.Number)),
			EmployeeID: strings.TrimSpace(scalar(r.EmployeeID)),
		}
		if len(c.Number) <= MinNumberDigits {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Name == "" {
			c.Name = UnknownName
		}
		out = append(out, c)
	}
	return out
}

// Ballot loads the label universe (every roster name, in roster order) and
// the vote events (each vote's choice, oldest first) that score.Aggregate
// consumes.
func Ballot(ctx context.Context, s Store) (universe, events []string, err error) {
	contacts, err := s.Contacts(ctx)
	if err != nil {
		return nil, nil, err
	}
	votes, err := s.Votes(ctx)
	if err != nil {
		return nil, nil, err
	}
	universe = make([]string, len(contacts))
	for i, c := range contacts {
		universe[i] = c.Name
	}
	events = make([]string, len(votes))
	for i, v := range votes {
		events[i] = v.VotedFor
	}
	return universe, events, nil
}

// voterKey is the comparison form of an employee ID.
func voterKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// findVoter returns the roster entry matching employeeID.
func findVoter(contacts []Contact, employeeID string) (Contact, bool) {
	key := voterKey(employeeID)
	for _, c := range contacts {
		if c.EmployeeID != "" && voterKey(c.EmployeeID) == key {
			return c, true
		}
	}
	return Contact{}, false
}

// checkBallot validates the raw CastVote arguments and returns the trimmed
// choice.
func checkBallot(employeeID, votedFor string) (string, error) {
	if err := errors.ValidateEmployeeID(employeeID); err != nil {
		return "", err
	}
	votedFor = strings.TrimSpace(votedFor)
	if err := errors.ValidateLabel(votedFor); err != nil {
		return "", err
	}
	return votedFor, nil
}

func sortVotes(votes []Vote) {
	slices.SortFunc(votes, func(a, b Vote) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
}

func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
