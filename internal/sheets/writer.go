package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/status"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer exports reports to a Google spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ service.ReportWriter = (*Writer)(nil)

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(config, srv, logger), nil
}

func newWriter(config Config, srv *sheets.Service, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger.With("component", "sheets"),
	}
}

// Write replaces the dashboard tab with the report.
func (w *Writer) Write(ctx context.Context, rep *model.Report) error {
	if rep == nil {
		return errors.New("nil report")
	}
	w.logger.Info("starting report export", "run_id", rep.RunID, "rows", len(rep.Rows))

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var spreadsheetID string
	var sheetID int64
	err := common.WithRetry(ctx, func() error {
		var err error
		spreadsheetID, sheetID, err = w.getOrCreateSpreadsheet(ctx)
		return classifyAPIError(err)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	table := NewTable(rep)

	err = common.WithRetry(ctx, func() error {
		if err := w.clearSheet(ctx, spreadsheetID); err != nil {
			return classifyAPIError(err)
		}
		return classifyAPIError(w.writeData(ctx, spreadsheetID, table.Rows))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, sheetID, table))
		}, retryOpts)
		if err != nil {
			// The data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(table.Rows))

	return nil
}

// classifyAPIError marks client errors other than rate limiting as permanent.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return common.Permanent(err)
		}
	}
	return err
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := newOAuthConfig(config.ClientID, config.ClientSecret, "")
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet and the id of its dashboard tab,
// adding the tab to an existing spreadsheet when it is missing.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", 0, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		for _, sh := range existing.Sheets {
			if sh.Properties != nil && sh.Properties.Title == SheetTitle {
				return w.config.SpreadsheetID, sh.Properties.SheetId, nil
			}
		}

		resp, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: SheetTitle}},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return "", 0, fmt.Errorf("unable to add sheet %s: %w", SheetTitle, err)
		}
		var sheetID int64
		if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
			sheetID = resp.Replies[0].AddSheet.Properties.SheetId
		}
		w.logger.Info("added sheet", "title", SheetTitle, "sheet_id", sheetID)
		return w.config.SpreadsheetID, sheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
			Locale:   w.config.Locale,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: SheetTitle}},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	var sheetID int64
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		sheetID = created.Sheets[0].Properties.SheetId
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	// Later exports reuse it.
	w.config.SpreadsheetID = created.SpreadsheetId

	return created.SpreadsheetId, sheetID, nil
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, SheetTitle+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes values in batches to stay under API request limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		rangeStr := fmt.Sprintf("%s!A%d", SheetTitle, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, table Table) error {
	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: formatRequests(sheetID, table),
	}).Context(ctx).Do()
	return err
}

// formatRequests builds the styling for a laid out table.
func formatRequests(sheetID int64, table Table) []*sheets.Request {
	width := int64(table.Width())
	requests := []*sheets.Request{
		boldRow(sheetID, 0, width, 16),
	}
	for _, row := range table.Sections {
		requests = append(requests, boldRow(sheetID, row, width, 12))
	}
	for _, row := range table.Headers {
		requests = append(requests, boldRow(sheetID, row, width, 0))
	}

	for _, cell := range table.Severities {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(cell.Row),
					EndRowIndex:      int64(cell.Row) + 1,
					StartColumnIndex: int64(cell.Col),
					EndColumnIndex:   int64(cell.Col) + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{BackgroundColor: severityColor(cell.Severity)},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	requests = append(requests,
		&sheets.Request{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   width,
				},
			},
		},
		&sheets.Request{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	)

	return requests
}

func boldRow(sheetID int64, row int, width int64, fontSize int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    int64(row),
				EndRowIndex:      int64(row) + 1,
				StartColumnIndex: 0,
				EndColumnIndex:   width,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{Bold: true, FontSize: fontSize},
				},
			},
			Fields: "userEnteredFormat.textFormat",
		},
	}
}

// severityColor returns the light background used for a severity tier.
func severityColor(s status.Severity) *sheets.Color {
	switch s {
	case status.Critical:
		return &sheets.Color{Red: 0.96, Green: 0.80, Blue: 0.80}
	case status.Caution:
		return &sheets.Color{Red: 1, Green: 0.95, Blue: 0.80}
	case status.Positive:
		return &sheets.Color{Red: 0.85, Green: 0.92, Blue: 0.83}
	default:
		return &sheets.Color{Red: 0.93, Green: 0.93, Blue: 0.93}
	}
}
