package records

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent       = "spigell/skillmatch"
	contentType     = "application/json"
	acceptEncoding  = "gzip"
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100
)

// ItemResponse is one page of a paged records API.
type ItemResponse struct {
	Items   []any
	Found   int
	Pages   int
	Page    int
	PerPage int `json:"per_page"`
}

// HTTPSource pulls candidates from a paged JSON API. Pages are zero based and
// requested with the "page" and "per_page" query parameters.
type HTTPSource struct {
	URL        string
	Token      string
	PerPage    int
	UserAgent  string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewHTTPSource(logger *zap.Logger, endpoint, token string) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{
		URL:     endpoint,
		Token:   token,
		PerPage: defaultPageSize,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
		logger:    logger,
	}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Load(ctx context.Context) (*Candidates, error) {
	q := url.Values{}
	if s.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(s.PerPage))
	}

	items, err := s.GetItems(ctx, s.URL, q)
	if err != nil {
		return nil, err
	}

	return DecodeCandidates(items, s.logger), nil
}

// GetItems requests url and follows the paging until the last page.
func (s *HTTPSource) GetItems(ctx context.Context, endpoint string, q url.Values) ([]any, error) {
	var items []any

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req = s.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.URL.RawQuery = q.Encode()

	response, err := s.fetch(req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("got response from records api", zap.Int("pages", response.Pages), zap.Int("found", response.Found))

	items = append(items, response.Items...)

	for response.Page < (response.Pages - 1) {
		s.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))

		next := response.Page + 1
		response, err = s.fetch(addPage(req, next))
		if err != nil {
			return nil, err
		}
		if response.Page < next {
			return nil, fmt.Errorf("records api returned page %d, want %d", response.Page, next)
		}

		items = append(items, response.Items...)
	}

	return items, nil
}

func (s *HTTPSource) fetch(req *http.Request) (*ItemResponse, error) {
	s.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	return parseItemResponse(resp)
}

func parseItemResponse(resp *http.Response) (*ItemResponse, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	var response ItemResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	return &response, nil
}

func (s *HTTPSource) setHeaders(req *http.Request) *http.Request {
	if s.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	return req
}

// addPage sets the page query parameter on the request URL.
func addPage(req *http.Request, page int) *http.Request {
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	return req
}
