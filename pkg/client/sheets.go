package client

import (
	"context"

	"salas/pkg/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type SheetsClient struct {
	Service *sheets.Service
}

// NewSheetsClient authenticates against the Google Sheets API. Inline JSON
// credentials take precedence over a key file path; with neither set the
// client falls back to application default credentials.
func NewSheetsClient(log *logger.Logger, credentialsJSON, credentialsFile string) *SheetsClient {
	opts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope),
	}
	switch {
	case credentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := sheets.NewService(context.Background(), opts...)
	if err != nil {
		log.Fatal("Failed to create Google Sheets client", "error", err)
	}

	log.Info("Successfully created Google Sheets client")
	return &SheetsClient{Service: service}
}
