package playerprovider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bennysakos/searchlight/internal/constants"
	"github.com/bennysakos/searchlight/internal/domain"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/reporting"
)

// The ratings site is a shared upstream. Keep every outbound request under
// one pacer so a burst of users can't get us blocked.
type RequestLimiter interface {
	Limit(ctx context.Context, maxOperationTime time.Duration, operation func()) bool
}

const MAX_REQUEST_TIME = 10 * time.Second

type RatingsAPI interface {
	GetProfilePage(ctx context.Context, username string) ([]byte, int, time.Time, error)
	CheckStatus(ctx context.Context) (int, time.Duration, error)
}

type ratingsAPIImpl struct {
	client  *resty.Client
	limiter RequestLimiter
}

func (api ratingsAPIImpl) GetProfilePage(ctx context.Context, username string) ([]byte, int, time.Time, error) {
	logger := logging.FromContext(ctx)
	profilePath := fmt.Sprintf("/user/%s", url.PathEscape(username))

	var (
		pageData   []byte
		statusCode int
		queriedAt  time.Time
		requestErr error
	)

	start := time.Now()
	ran := api.limiter.Limit(ctx, MAX_REQUEST_TIME, func() {
		res, err := api.client.R().SetContext(ctx).Get(profilePath)
		queriedAt = time.Now()
		if err != nil {
			requestErr = fmt.Errorf("failed to send request: %w (%w)", err, domain.ErrTemporarilyUnavailable)
			return
		}
		pageData = res.Body()
		statusCode = res.StatusCode()
	})
	if !ran {
		err := fmt.Errorf("no request slot available before deadline (%w)", domain.ErrTemporarilyUnavailable)
		logger.Error(err.Error())
		return []byte{}, -1, time.Time{}, err
	}
	if requestErr != nil {
		logger.Error(requestErr.Error())
		reporting.Report(ctx, requestErr, map[string]string{
			"username": username,
		})
		return []byte{}, -1, time.Time{}, requestErr
	}

	logger.Info("ratings request completed", "path", profilePath, "status", statusCode, "duration", time.Since(start).String())

	return pageData, statusCode, queriedAt, nil
}

func (api ratingsAPIImpl) CheckStatus(ctx context.Context) (int, time.Duration, error) {
	logger := logging.FromContext(ctx)

	start := time.Now()
	res, err := api.client.R().SetContext(ctx).Get("/")
	latency := time.Since(start)
	if err != nil {
		err := fmt.Errorf("failed to reach ratings site: %w (%w)", err, domain.ErrTemporarilyUnavailable)
		logger.Error(err.Error())
		return -1, latency, err
	}

	logger.Info("ratings status check completed", "status", res.StatusCode(), "latency", latency.String())

	return res.StatusCode(), latency, nil
}

func NewRatingsAPI(httpClient *http.Client, baseURL string, limiter RequestLimiter) (RatingsAPI, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ratings base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid ratings base url: %s", baseURL)
	}

	client := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("User-Agent", constants.USER_AGENT)

	return ratingsAPIImpl{
		client:  client,
		limiter: limiter,
	}, nil
}
