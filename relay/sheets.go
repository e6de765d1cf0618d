package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/puzzlesmarathon/registration-backend/registration"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const ledgerSheet = "Registrations"

var _ registration.PaidLedger = &SheetsLedger{}

// SheetsLedger appends every paid registration as a row of a Google Sheet.
type SheetsLedger struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewSheetsLedger(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsLedger, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}, opts...)
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsLedger{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (l *SheetsLedger) RecordPaid(ctx context.Context, reg registration.Registration) error {
	sessionReference := ""
	if reg.SessionReference != nil {
		sessionReference = *reg.SessionReference
	}

	vr := &sheetsv4.ValueRange{Values: [][]interface{}{{
		reg.ID,
		string(reg.Type),
		reg.Status.String(),
		sessionReference,
		reg.CreatedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		string(reg.Data),
	}}}

	_, err := l.srv.Spreadsheets.Values.Append(l.spreadsheetID, ledgerSheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append registration %q to ledger: %w", reg.ID, err)
	}

	return nil
}
