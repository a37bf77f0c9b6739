package playerprovider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/bennysakos/searchlight/internal/domain"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/reporting"
)

const maxReportedPageBytes = 2048

// rawProfile holds the values as they appear in the page markup.
// Normalization into domain types happens in a separate step.
type rawProfile struct {
	username      string
	rankName      string
	experience    string
	maxExperience string
	kills         string
	deaths        string
	kdRatio       string
	goldBoxes     string
	group         string
	premium       bool
	online        bool
	turrets       []string
	hulls         []string
}

type profileTextRule struct {
	selector string
	attr     string
	assign   func(raw *rawProfile, value string)
}

// The page is parsed best-effort: a missing field keeps its zero value
// rather than failing the whole profile.
var profileTextRules = []profileTextRule{
	{".profile-header .nickname", "", func(raw *rawProfile, value string) { raw.username = value }},
	{".profile-header .rank-icon", "alt", func(raw *rawProfile, value string) { raw.rankName = value }},
	{".experience .current", "", func(raw *rawProfile, value string) { raw.experience = value }},
	{".experience .next", "", func(raw *rawProfile, value string) { raw.maxExperience = value }},
}

var profileFlagRules = []struct {
	selector string
	assign   func(raw *rawProfile, present bool)
}{
	{".profile-header .premium-icon", func(raw *rawProfile, present bool) { raw.premium = present }},
	{".profile-header .status.online", func(raw *rawProfile, present bool) { raw.online = present }},
}

// The stat table labels have changed spelling before. Match leniently.
var statRules = []struct {
	labels []string
	assign func(raw *rawProfile, value string)
}{
	{[]string{"kills"}, func(raw *rawProfile, value string) { raw.kills = value }},
	{[]string{"deaths"}, func(raw *rawProfile, value string) { raw.deaths = value }},
	{[]string{"k/d", "kd"}, func(raw *rawProfile, value string) { raw.kdRatio = value }},
	{[]string{"gold boxes", "gold boxes caught"}, func(raw *rawProfile, value string) { raw.goldBoxes = value }},
	{[]string{"group", "clan"}, func(raw *rawProfile, value string) { raw.group = value }},
}

func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func matchStatLabel(label string, candidates []string) bool {
	cleaned := strings.TrimSuffix(cleanText(label), ":")
	for _, candidate := range candidates {
		if strings.EqualFold(cleaned, candidate) {
			return true
		}
	}
	return false
}

// parseCount reads an integer the way the site renders them, with
// arbitrary group separators ("105 613", "1,234,567"). Unparseable
// values fall back to 0.
func parseCount(text string) int {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	count, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return count
}

func parseRatio(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	ratio, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		return 0, false
	}
	return math.Round(ratio*100) / 100, true
}

func parseProfileDocument(ctx context.Context, pageData []byte) (*goquery.Document, error) {
	logger := logging.FromContext(ctx)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageData))
	if err != nil {
		logger.Error("Failed to parse profile page", "error", err)
		return nil, err
	}
	return doc, nil
}

func extractProfile(profile *goquery.Selection) rawProfile {
	raw := rawProfile{}

	for _, rule := range profileTextRules {
		sel := profile.Find(rule.selector).First()
		if sel.Length() == 0 {
			continue
		}
		value := cleanText(sel.Text())
		if rule.attr != "" {
			value = cleanText(sel.AttrOr(rule.attr, ""))
		}
		rule.assign(&raw, value)
	}

	for _, rule := range profileFlagRules {
		rule.assign(&raw, profile.Find(rule.selector).Length() > 0)
	}

	profile.Find(".stats li").Each(func(_ int, row *goquery.Selection) {
		label := row.Find(".label").First().Text()
		value := cleanText(row.Find(".value").First().Text())
		for _, rule := range statRules {
			if matchStatLabel(label, rule.labels) {
				rule.assign(&raw, value)
				return
			}
		}
	})

	profile.Find(".equipment .turrets li").Each(func(_ int, item *goquery.Selection) {
		if name := cleanText(item.Text()); name != "" {
			raw.turrets = append(raw.turrets, name)
		}
	})
	profile.Find(".equipment .hulls li").Each(func(_ int, item *goquery.Selection) {
		if name := cleanText(item.Text()); name != "" {
			raw.hulls = append(raw.hulls, name)
		}
	})

	return raw
}

func normalizeProfile(username string, queriedAt time.Time, raw rawProfile) *domain.Player {
	displayName := raw.username
	if displayName == "" {
		displayName = username
	}

	kills := parseCount(raw.kills)
	deaths := parseCount(raw.deaths)

	kdRatio, ok := parseRatio(raw.kdRatio)
	if !ok {
		kdRatio = domain.KillDeathRatio(kills, deaths)
	}

	var maxExperience *int
	if raw.maxExperience != "" {
		m := parseCount(raw.maxExperience)
		maxExperience = &m
	}

	turrets := raw.turrets
	if turrets == nil {
		turrets = []string{}
	}
	hulls := raw.hulls
	if hulls == nil {
		hulls = []string{}
	}

	return &domain.Player{
		QueriedAt: queriedAt,

		Username: displayName,
		Rank:     domain.RankFromName(raw.rankName),
		Group:    raw.group,

		Experience:    parseCount(raw.experience),
		MaxExperience: maxExperience,

		Kills:   kills,
		Deaths:  deaths,
		KDRatio: kdRatio,

		Premium:   raw.premium,
		GoldBoxes: parseCount(raw.goldBoxes),
		IsOnline:  raw.online,

		Equipment: domain.Equipment{
			Turrets: turrets,
			Hulls:   hulls,
		},
	}
}

func checkForRatingsError(ctx context.Context, statusCode int, pageData []byte) error {
	// Only support 200 OK
	if statusCode == 200 {
		// The site serves HTML. Anything else means we are not looking at
		// a profile page.
		trimmed := bytes.TrimSpace(pageData)
		if len(trimmed) == 0 || trimmed[0] != '<' {
			return fmt.Errorf("ratings site returned non-HTML content (%w)", domain.ErrUnrecognizedPage)
		}

		return nil
	}

	// Error for unknown status code
	err := fmt.Errorf("ratings site returned unsupported status code: %d", statusCode)

	// Errors for known status codes
	switch statusCode {
	case 404:
		err = fmt.Errorf("ratings site returned 404 (%w)", domain.ErrPlayerNotFound)
	case 429:
		err = fmt.Errorf("ratings site ratelimit exceeded (%w)", domain.ErrTemporarilyUnavailable)
	case 500, 502, 503, 504, 520, 521, 522, 523, 524, 525, 526, 527, 530:
		err = fmt.Errorf("ratings site returned status code %d (%s) (%w)", statusCode, http.StatusText(statusCode), domain.ErrTemporarilyUnavailable)
	}

	return err
}

func pageSnippet(pageData []byte) string {
	if len(pageData) <= maxReportedPageBytes {
		return string(pageData)
	}
	return string(pageData[:maxReportedPageBytes])
}

func RatingsPageToPlayer(ctx context.Context, username string, queriedAt time.Time, pageData []byte, statusCode int) (*domain.Player, error) {
	logger := logging.FromContext(ctx)

	if err := checkForRatingsError(ctx, statusCode, pageData); err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			logger.Info("Player not found")
			return nil, err
		}
		reporting.Report(
			ctx,
			err,
			map[string]string{
				"username":   username,
				"statusCode": fmt.Sprint(statusCode),
				"page":       pageSnippet(pageData),
			},
		)
		logger.Error(
			"Got response from ratings site",
			"status", "error",
			"error", err.Error(),
			"statusCode", statusCode,
			"contentLength", len(pageData),
		)
		return nil, err
	}

	logger.Info(
		"Got response from ratings site",
		"status", "success",
		"statusCode", statusCode,
		"contentLength", len(pageData),
	)

	doc, err := parseProfileDocument(ctx, pageData)
	if err != nil {
		err = fmt.Errorf("failed to parse profile page: %w", err)
		reporting.Report(
			ctx,
			err,
			map[string]string{
				"username":   username,
				"statusCode": fmt.Sprint(statusCode),
				"page":       pageSnippet(pageData),
			},
		)
		return nil, err
	}

	profile := doc.Find(".user-profile").First()
	if profile.Length() == 0 {
		if doc.Find(".profile-error").Length() > 0 {
			logger.Info("Player not found")
			return nil, domain.ErrPlayerNotFound
		}

		err := fmt.Errorf("page contains no profile (%w)", domain.ErrUnrecognizedPage)
		reporting.Report(
			ctx,
			err,
			map[string]string{
				"username":   username,
				"statusCode": fmt.Sprint(statusCode),
				"page":       pageSnippet(pageData),
			},
		)
		return nil, err
	}

	return normalizeProfile(username, queriedAt, extractProfile(profile)), nil
}
