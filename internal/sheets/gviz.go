// internal/sheets/gviz.go
package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
)

// The gviz endpoint answers with a JSONP-like script wrapping the table object:
//
//	/*O_o*/
//	google.visualization.Query.setResponse({...});
var responsePattern = regexp.MustCompile(`(?s)setResponse\((.*)\);\s*$`)

// UseNumber keeps numeric cells exact until they are cleaned into decimals.
var payloadJSON = jsoniter.Config{UseNumber: true}.Froze()

type gvizPayload struct {
	Status string `json:"status"`
	Table  *struct {
		Rows []struct {
			C []*gvizCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

type gvizCell struct {
	V interface{} `json:"v"`
	F string      `json:"f,omitempty"`
}

// GVizSource reads one tab of a Google Sheet through the visualization query API.
type GVizSource struct {
	BaseURL string
	SheetID string
	GID     string
}

func NewGVizSource(baseURL, sheetID, gid string) *GVizSource {
	return &GVizSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		SheetID: sheetID,
		GID:     gid,
	}
}

func (s *GVizSource) Kind() string { return "gviz" }

func (s *GVizSource) Location() string {
	q := url.Values{}
	q.Set("gid", s.GID)
	q.Set("tqx", "out:json")
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s", s.BaseURL, url.PathEscape(s.SheetID), q.Encode())
}

func (s *GVizSource) Rows(ctx context.Context) ([]Row, error) {
	var body string
	var code int

	err := gout.GET(s.Location()).
		WithContext(ctx).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransportUnavailable, code)
	}

	return ParseGVizResponse(body)
}

// ParseGVizResponse extracts the table rows from a raw gviz response body.
func ParseGVizResponse(body string) ([]Row, error) {
	match := responsePattern.FindStringSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("%w: could not find JSON data in the response", ErrMalformedPayload)
	}

	var payload gvizPayload
	if err := payloadJSON.UnmarshalFromString(match[1], &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Table == nil {
		return nil, fmt.Errorf("%w: response has no table (status %q)", ErrMalformedPayload, payload.Status)
	}

	rows := make([]Row, 0, len(payload.Table.Rows))
	for _, r := range payload.Table.Rows {
		row := make(Row, len(r.C))
		for i, cell := range r.C {
			if cell != nil {
				row[i] = cell.V
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
