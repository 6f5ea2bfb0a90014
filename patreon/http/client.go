package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	log "github.com/sirupsen/logrus"

	"github.com/willmadison/patreon-sync-tools/patreon"
	"github.com/willmadison/patreon-sync-tools/patreon/jsonapi"
)

const DefaultBaseURL = "https://www.patreon.com/api/oauth2/v2"

const pageSize = 100

type Client interface {
	Identity(context.Context) (patreon.User, error)
	Campaigns(context.Context) (Page[patreon.Campaign], error)
	Campaign(ctx context.Context, id string) (patreon.Campaign, error)
	Members(ctx context.Context, campaignID, cursor string) (Page[patreon.Member], error)
	Member(ctx context.Context, id string) (patreon.Member, error)
	Posts(ctx context.Context, campaignID, cursor string) (Page[patreon.Post], error)
	Post(ctx context.Context, id string) (patreon.Post, error)
	Webhooks(context.Context) (Page[patreon.Webhook], error)
}

// Page is one page of a list endpoint. Records that failed validation are
// reported in Rejected and never affect the records in Items.
type Page[T any] struct {
	Items    []T
	Rejected []Rejection
	Next     string
}

type Rejection struct {
	Kind patreon.Kind
	ID   string
	Err  error
}

type patreonClient struct {
	AccessToken string
	BaseURL     string
	client      *http.Client
	maxTries    uint
	newBackOff  func() backoff.BackOff
}

func NewPatreonClient(baseURL, accessToken string) (Client, error) {
	if accessToken == "" {
		return &patreonClient{}, errors.New("missing Patreon access token")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &patreonClient{
		AccessToken: accessToken,
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		client:      &http.Client{Timeout: 30 * time.Second},
		maxTries:    5,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}, nil
}

type retryable interface {
	CanRetry() bool
}

type retryableError struct {
	Err      error
	canRetry bool
}

func (e retryableError) Error() string {
	return e.Err.Error()
}

func (e retryableError) Unwrap() error {
	return e.Err
}

func (e retryableError) CanRetry() bool {
	return e.canRetry
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("HTTP error: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error: %d: %v", e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// get issues a GET and retries transient failures: rate limiting (honouring
// Retry-After), 5xx responses and "retry later" bodies.
func (c *patreonClient) get(ctx context.Context, endpoint string, params url.Values) (*jsonapi.Document, error) {
	operation := func() (*jsonapi.Document, error) {
		doc, err := c.makeRequest(ctx, http.MethodGet, endpoint, params)

		var re retryable
		if err != nil && !(errors.As(err, &re) && re.CanRetry()) {
			var retryAfter *backoff.RetryAfterError
			if errors.As(err, &retryAfter) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		return doc, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WithError(err).WithField("endpoint", endpoint).WithField("retry_in", next).Warn("retrying Patreon request")
		}),
	)
}

func (c *patreonClient) makeRequest(ctx context.Context, method, endpoint string, params url.Values) (*jsonapi.Document, error) {
	target := c.BaseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("User-Agent", "patreon-sync-tools")

	log.WithField("method", req.Method).WithField("path", req.URL.Path).Debug("issuing request")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, retryableError{Err: fmt.Errorf("failed to make request: %w", err), canRetry: true}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retryableError{Err: fmt.Errorf("failed to read response body: %w", err), canRetry: true}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			return nil, backoff.RetryAfter(seconds)
		}
		return nil, retryableError{Err: &StatusError{StatusCode: resp.StatusCode}, canRetry: true}
	}

	doc, err := jsonapi.Parse(bytes.NewReader(respBody))
	if err != nil {
		errorReturned := fmt.Errorf("failed to unmarshal response: %w", err)

		if strings.ToLower(strings.TrimSpace(string(respBody))) == "retry later" || resp.StatusCode >= 500 {
			return nil, retryableError{Err: errorReturned, canRetry: true}
		}

		return nil, errorReturned
	}

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Err: doc.Err()}
		return nil, retryableError{Err: statusErr, canRetry: resp.StatusCode >= 500}
	}

	return doc, nil
}

// fields asks for every declared attribute of kind and of each included
// relationship's target, so required fields are always present.
func fields(kind patreon.Kind, include ...string) url.Values {
	params := url.Values{}
	params.Set(fmt.Sprintf("fields[%s]", kind), strings.Join(patreon.AttributeNames(kind), ","))

	if len(include) > 0 {
		params.Set("include", strings.Join(include, ","))
	}

	for _, rel := range include {
		target, ok := patreon.Schema().RelationshipTarget(kind, rel)
		if !ok {
			continue
		}
		params.Set(fmt.Sprintf("fields[%s]", target), strings.Join(patreon.AttributeNames(target), ","))
	}

	return params
}

func paged(params url.Values, cursor string) url.Values {
	params.Set("page[count]", strconv.Itoa(pageSize))
	if cursor != "" {
		params.Set("page[cursor]", cursor)
	}
	return params
}

func decodeOne[T any](doc *jsonapi.Document, kind patreon.Kind) (T, error) {
	var zero T

	resources, err := doc.Resources()
	if err != nil {
		return zero, err
	}
	if len(resources) != 1 {
		return zero, fmt.Errorf("expected one %s, got %d resources", kind, len(resources))
	}

	return decodeResource[T](doc, resources[0], kind)
}

func decodePage[T any](doc *jsonapi.Document, kind patreon.Kind) (Page[T], error) {
	page := Page[T]{Next: doc.NextCursor()}

	resources, err := doc.Resources()
	if err != nil {
		return page, err
	}

	for _, res := range resources {
		item, err := decodeResource[T](doc, res, kind)
		if err != nil {
			page.Rejected = append(page.Rejected, Rejection{Kind: kind, ID: res.ID, Err: err})
			continue
		}
		page.Items = append(page.Items, item)
	}

	return page, nil
}

func decodeResource[T any](doc *jsonapi.Document, res jsonapi.Resource, kind patreon.Kind) (T, error) {
	var zero T

	if res.Type != kind {
		return zero, fmt.Errorf("%w: expected a %s resource, got %q", patreon.ErrTypeMismatch, kind, res.Type)
	}

	e, err := patreon.Decode(kind, doc.Flatten(res))
	if err != nil {
		return zero, err
	}

	return *any(e).(*T), nil
}

func (c *patreonClient) Identity(ctx context.Context) (patreon.User, error) {
	doc, err := c.get(ctx, "/identity", fields(patreon.KindUser, "campaign", "memberships"))
	if err != nil {
		return patreon.User{}, err
	}

	return decodeOne[patreon.User](doc, patreon.KindUser)
}

func (c *patreonClient) Campaigns(ctx context.Context) (Page[patreon.Campaign], error) {
	doc, err := c.get(ctx, "/campaigns", fields(patreon.KindCampaign, "tiers", "goals"))
	if err != nil {
		return Page[patreon.Campaign]{}, err
	}

	return decodePage[patreon.Campaign](doc, patreon.KindCampaign)
}

func (c *patreonClient) Campaign(ctx context.Context, id string) (patreon.Campaign, error) {
	endpoint := fmt.Sprintf("/campaigns/%s", url.PathEscape(id))

	doc, err := c.get(ctx, endpoint, fields(patreon.KindCampaign, "tiers", "goals"))
	if err != nil {
		return patreon.Campaign{}, err
	}

	return decodeOne[patreon.Campaign](doc, patreon.KindCampaign)
}

func (c *patreonClient) Members(ctx context.Context, campaignID, cursor string) (Page[patreon.Member], error) {
	endpoint := fmt.Sprintf("/campaigns/%s/members", url.PathEscape(campaignID))
	params := paged(fields(patreon.KindMember, "address", "currently_entitled_tiers", "user"), cursor)

	doc, err := c.get(ctx, endpoint, params)
	if err != nil {
		return Page[patreon.Member]{}, err
	}

	return decodePage[patreon.Member](doc, patreon.KindMember)
}

func (c *patreonClient) Member(ctx context.Context, id string) (patreon.Member, error) {
	endpoint := fmt.Sprintf("/members/%s", url.PathEscape(id))

	doc, err := c.get(ctx, endpoint, fields(patreon.KindMember, "address", "currently_entitled_tiers", "pledge_history", "user"))
	if err != nil {
		return patreon.Member{}, err
	}

	return decodeOne[patreon.Member](doc, patreon.KindMember)
}

func (c *patreonClient) Posts(ctx context.Context, campaignID, cursor string) (Page[patreon.Post], error) {
	endpoint := fmt.Sprintf("/campaigns/%s/posts", url.PathEscape(campaignID))

	doc, err := c.get(ctx, endpoint, paged(fields(patreon.KindPost), cursor))
	if err != nil {
		return Page[patreon.Post]{}, err
	}

	return decodePage[patreon.Post](doc, patreon.KindPost)
}

func (c *patreonClient) Post(ctx context.Context, id string) (patreon.Post, error) {
	endpoint := fmt.Sprintf("/posts/%s", url.PathEscape(id))

	doc, err := c.get(ctx, endpoint, fields(patreon.KindPost))
	if err != nil {
		return patreon.Post{}, err
	}

	return decodeOne[patreon.Post](doc, patreon.KindPost)
}

func (c *patreonClient) Webhooks(ctx context.Context) (Page[patreon.Webhook], error) {
	doc, err := c.get(ctx, "/webhooks", fields(patreon.KindWebhook))
	if err != nil {
		return Page[patreon.Webhook]{}, err
	}

	return decodePage[patreon.Webhook](doc, patreon.KindWebhook)
}
