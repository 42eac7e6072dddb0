package randomuser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/ppl/internal/domain"
	"github.com/bnema/ppl/internal/ports"
)

const (
	DefaultBaseURL   = "https://randomuser.me"
	apiPath          = "/api/"
	includedFields   = "name,email,location,picture"
	maxResponseBytes = 4 << 20
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// Results is the page size; zero leaves it to the server.
	Results   int
	UserAgent string
}

var _ ports.PersonFetcher = (*Client)(nil)

type resultsPayload struct {
	Results []personRecord `json:"results"`
	Error   string         `json:"error"`
}

// personRecord mirrors the API record. Fields are pointers so that a record
// missing any of them can be told apart from one carrying empty strings.
type personRecord struct {
	Name *struct {
		Title *string `json:"title"`
		First *string `json:"first"`
		Last  *string `json:"last"`
	} `json:"name"`
	Email    *string `json:"email"`
	Location *struct {
		City    *string `json:"city"`
		Country *string `json:"country"`
	} `json:"location"`
	Picture *struct {
		Thumbnail *string `json:"thumbnail"`
	} `json:"picture"`
}

// missingField names the first required field absent from the record, or
// returns "" when the record is complete.
func (r personRecord) missingField() string {
	switch {
	case r.Name == nil:
		return "name"
	case r.Name.Title == nil:
		return "name.title"
	case r.Name.First == nil:
		return "name.first"
	case r.Name.Last == nil:
		return "name.last"
	case r.Email == nil:
		return "email"
	case r.Location == nil:
		return "location"
	case r.Location.City == nil:
		return "location.city"
	case r.Location.Country == nil:
		return "location.country"
	case r.Picture == nil:
		return "picture"
	case r.Picture.Thumbnail == nil:
		return "picture.thumbnail"
	default:
		return ""
	}
}

func (r personRecord) toPerson() domain.Person {
	return domain.Person{
		Name:         fmt.Sprintf("%s %s %s", *r.Name.Title, *r.Name.First, *r.Name.Last),
		Email:        *r.Email,
		Address:      fmt.Sprintf("%s, %s", *r.Location.City, *r.Location.Country),
		ThumbnailURL: *r.Picture.Thumbnail,
	}
}

func (c *Client) FetchPersons(ctx context.Context) ([]domain.Person, error) {
	if c.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent())

	response, err := c.httpClient().Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: perform request: %w", domain.ErrFetchFailed, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrFetchFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUnexpectedStatus, response.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload resultsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecodeRecords, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrFetchFailed, payload.Error)
	}

	persons := make([]domain.Person, 0, len(payload.Results))
	for i, record := range payload.Results {
		if field := record.missingField(); field != "" {
			return nil, fmt.Errorf("%w: record %d has no %s", domain.ErrDecodeRecords, i, field)
		}
		persons = append(persons, record.toPerson())
	}

	return persons, nil
}

func (c *Client) endpoint() (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + apiPath)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	query := parsed.Query()
	query.Set("inc", includedFields)
	if c.Results > 0 {
		query.Set("results", strconv.Itoa(c.Results))
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return "ppl"
	}
	return c.UserAgent
}
