package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Seed resource names, in the order they are loaded
const (
	SeedAccounts         = "accounts.json"
	SeedStatements       = "statements.json"
	SeedTransactionTypes = "transactionTypes.json"
	SeedTransactions     = "transactions.json"
)

type seedStep struct {
	resource string
	create   func(s *Service, ctx context.Context, body []byte) Result
}

// Transactions reference the other three, so they load last.
var seedSteps = []seedStep{
	{SeedAccounts, (*Service).CreateAccount},
	{SeedStatements, (*Service).CreateStatement},
	{SeedTransactionTypes, (*Service).CreateTransactionType},
	{SeedTransactions, (*Service).CreateTransaction},
}

// SeedEntry is the result of replaying one seed record
type SeedEntry struct {
	Resource string
	Index    int
	Result   Result
}

// SeedReport collects the per-record results of SeedAll
type SeedReport struct {
	Entries []SeedEntry
	Summary string
}

// Inserted returns how many records of resource were written
func (r *SeedReport) Inserted(resource string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Resource == resource && e.Result.OK() {
			n++
		}
	}
	return n
}

// Failed returns how many records of resource were rejected
func (r *SeedReport) Failed(resource string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Resource == resource && !e.Result.OK() {
			n++
		}
	}
	return n
}

// String returns every result message on its own line followed by the summary
func (r *SeedReport) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(e.Result.Message)
		b.WriteString("\n")
	}
	b.WriteString(r.Summary)
	return b.String()
}

// SeedAll replays the seed collections through the record writers. Failing
// records do not stop the load. A resource that is missing or not a JSON
// array stops it; records written before that stay in the database.
func (s *Service) SeedAll(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{}

	for _, step := range seedSteps {
		records, err := s.readSeed(step.resource)
		if err != nil {
			report.Summary = fmt.Sprintf("Failed to fill up database. %v", err)
			s.log.Errorf("Seeding stopped at %s: %v", step.resource, err)
			return report, err
		}
		for i, record := range records {
			result := step.create(s, ctx, record)
			report.Entries = append(report.Entries, SeedEntry{Resource: step.resource, Index: i, Result: result})
		}
		s.log.Infof("Seeded %s: %d inserted, %d failed", step.resource, report.Inserted(step.resource), report.Failed(step.resource))
	}

	inserted, failed := 0, 0
	for _, e := range report.Entries {
		if e.Result.OK() {
			inserted++
		} else {
			failed++
		}
	}
	report.Summary = fmt.Sprintf("Database filled up: %d records inserted, %d failed.", inserted, failed)
	return report, nil
}

func (s *Service) readSeed(resource string) ([]json.RawMessage, error) {
	if s.seeds == nil {
		return nil, fmt.Errorf("resource %q was not found", resource)
	}
	raw, err := fs.ReadFile(s.seeds, resource)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("resource %q was not found", resource)
	}
	if err != nil {
		return nil, fmt.Errorf("resource %q could not be read: %w", resource, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("resource %q is not a JSON array: %w", resource, err)
	}
	return records, nil
}
