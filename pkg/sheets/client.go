package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultTab = "Sheet1"

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	// Endpoint overrides the API endpoint, used by tests
	Endpoint string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ReplaceTab clears tab and writes rows starting at A1
func (c *Client) ReplaceTab(ctx context.Context, spreadsheetID, tab string, rows [][]interface{}) (int, error) {
	if spreadsheetID == "" {
		return 0, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if tab == "" {
		tab = defaultTab
	}

	if err := c.ClearValues(ctx, spreadsheetID, fmt.Sprintf("%s!A:Z", tab)); err != nil {
		return 0, fmt.Errorf("sheets: failed to clear tab: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("%s!A1", tab), rows); err != nil {
		return 0, fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	return len(rows), nil
}

func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return err
}

func (c *Client) ClearValues(ctx context.Context, spreadsheetID, range_ string) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}
