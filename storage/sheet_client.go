package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"gopkg.in/resty.v1"
)

// SheetClient talks to the spreadsheet web-app endpoint that owns every
// dispatch, login and drop-down row.
type SheetClient interface {
	GetData(ctx context.Context, sheet string) ([]Row, error)
	Insert(ctx context.Context, sheet string, values []string) error
	Update(ctx context.Context, sheet string, rowIndex int, patch RowPatch) error
	Delete(ctx context.Context, sheet string, rowIndex int) error
	UploadFile(ctx context.Context, upload UploadRequest) (string, error)
}

// UploadRequest is one file pushed through action=uploadFile.
type UploadRequest struct {
	DataURL  string
	FileName string
	MimeType string
	FolderID string
}

type SheetClientOptions struct {
	Timeout     time.Duration
	Retries     int
	TokenSource oauth2.TokenSource
}

type sheetResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	FileURL string            `json:"fileUrl"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
}

func (r sheetResponse) errorText() string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return "request was not successful"
}

// sheetClientImpl sends reads through reader, which retries transport
// failures. Writes go through writer, which never retries: the endpoint has
// no idempotency key, so a resent insert or delete could apply twice.
type sheetClientImpl struct {
	endpoint    string
	reader      *resty.Client
	writer      *resty.Client
	tokenSource oauth2.TokenSource
}

func NewSheetClient(endpoint string, opts SheetClientOptions) SheetClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	logw := log.StandardLogger().WriterLevel(log.WarnLevel)
	cl := http.Client{Timeout: opts.Timeout}
	reader := resty.NewWithClient(&cl).SetLogger(logw)
	if opts.Retries > 0 {
		reader.SetRetryCount(opts.Retries).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(3 * time.Second)
	}
	writer := resty.NewWithClient(&cl).SetLogger(logw)
	return &sheetClientImpl{endpoint: endpoint, reader: reader, writer: writer, tokenSource: opts.TokenSource}
}

func (s *sheetClientImpl) makeRequest(ctx context.Context, client *resty.Client) (*resty.Request, error) {
	req := client.R().SetContext(ctx)
	if s.tokenSource != nil {
		token, err := s.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to get sheet access token: %w", err)
		}
		req.SetAuthToken(token.AccessToken)
	}
	return req, nil
}

func (s *sheetClientImpl) GetData(ctx context.Context, sheet string) ([]Row, error) {
	req, err := s.makeRequest(ctx, s.reader)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetQueryParams(map[string]string{
		"sheet":  sheet,
		"action": "getData",
	}).Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", sheet, err)
	}
	result, err := decodeSheetResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", sheet, err)
	}

	rows := make([]Row, 0, len(result.Data))
	for i, raw := range result.Data {
		row, err := decodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
		rows = append(rows, row)
	}
	log.Debugf("fetched %d rows from sheet %s", len(rows), sheet)
	return rows, nil
}

func (s *sheetClientImpl) Insert(ctx context.Context, sheet string, values []string) error {
	rowData, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.post(ctx, map[string]string{
		"action":    "insert",
		"sheetName": sheet,
		"rowData":   string(rowData),
	})
	if err != nil {
		return fmt.Errorf("failed to insert into sheet %s: %w", sheet, err)
	}
	return nil
}

func (s *sheetClientImpl) Update(ctx context.Context, sheet string, rowIndex int, patch RowPatch) error {
	if rowIndex < 1 {
		return fmt.Errorf("invalid row index %d", rowIndex)
	}
	rowData, err := json.Marshal(patch.Dense())
	if err != nil {
		return err
	}
	_, err = s.post(ctx, map[string]string{
		"action":    "update",
		"sheetName": sheet,
		"rowIndex":  strconv.Itoa(rowIndex),
		"rowData":   string(rowData),
	})
	if err != nil {
		return fmt.Errorf("failed to update row %d of sheet %s: %w", rowIndex, sheet, err)
	}
	return nil
}

func (s *sheetClientImpl) Delete(ctx context.Context, sheet string, rowIndex int) error {
	if rowIndex < 1 {
		return fmt.Errorf("invalid row index %d", rowIndex)
	}
	_, err := s.post(ctx, map[string]string{
		"action":    "delete",
		"sheetName": sheet,
		"rowIndex":  strconv.Itoa(rowIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to delete row %d of sheet %s: %w", rowIndex, sheet, err)
	}
	return nil
}

func (s *sheetClientImpl) UploadFile(ctx context.Context, upload UploadRequest) (string, error) {
	result, err := s.post(ctx, map[string]string{
		"action":     "uploadFile",
		"base64Data": upload.DataURL,
		"fileName":   upload.FileName,
		"mimeType":   upload.MimeType,
		"folderId":   upload.FolderID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", upload.FileName, err)
	}
	if result.FileURL == "" {
		return "", fmt.Errorf("failed to upload %s: response has no fileUrl", upload.FileName)
	}
	return result.FileURL, nil
}

func (s *sheetClientImpl) post(ctx context.Context, form map[string]string) (*sheetResponse, error) {
	req, err := s.makeRequest(ctx, s.writer)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetFormData(form).Post(s.endpoint)
	if err != nil {
		return nil, err
	}
	return decodeSheetResponse(resp)
}

func decodeSheetResponse(resp *resty.Response) (*sheetResponse, error) {
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("status code %d %s", resp.StatusCode(), truncate(string(resp.Body()), 200))
	}
	var result sheetResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("undecodable response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%s", result.errorText())
	}
	return &result, nil
}

func decodeRow(raw json.RawMessage) (Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var cells []interface{}
	if err := dec.Decode(&cells); err != nil {
		return nil, err
	}
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = CellString(c)
	}
	return row, nil
}

// CellString renders a decoded JSON cell the way the sheet displays it.
// Numbers keep every digit the endpoint sent, so long ids survive.
func CellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d.String()
		}
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
