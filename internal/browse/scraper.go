// Package browse scrapes creator world listings from the VRChat website
// with a headless Chrome session. It is the fallback path for creators the
// API will not list without elevated credentials.
package browse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"

	"worldfeed/internal/config"
	"worldfeed/internal/logging"
	"worldfeed/internal/world"
)

const userPageBase = "https://vrchat.com/home/user/"

// Scraper drives a headless browser session against the VRChat website.
type Scraper struct {
	headless   bool
	binPath    string
	navTimeout time.Duration
	logger     *slog.Logger
}

// New builds a scraper from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Scraper {
	timeout := time.Duration(cfg.Browser.NavigationTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		headless:   cfg.Browser.Headless,
		binPath:    cfg.Browser.ExecutablePath,
		navTimeout: timeout,
		logger:     logging.WithComponent(logger, "browse"),
	}
}

// CreatorWorlds loads a creator's profile page and extracts the listed
// worlds. Only fields visible on the page are populated; callers merge the
// result with API metadata when available.
func (s *Scraper) CreatorWorlds(ctx context.Context, userID string) ([]world.Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("browse: user id is required")
	}

	sessionID := uuid.NewString()
	s.logger.Debug("starting browser session",
		logging.String("session", sessionID),
		logging.String("user", userID))

	launch := launcher.New().Headless(s.headless)
	if s.binPath != "" {
		launch = launch.Bin(s.binPath)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			s.logger.Warn("close browser", logging.Error(closeErr))
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	page, err := browser.Context(navCtx).Page(proto.TargetCreateTarget{URL: userPageBase + userID})
	if err != nil {
		return nil, fmt.Errorf("open user page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for user page: %w", err)
	}

	// World cards render as links into /home/world/<id>; anything else on
	// the profile is ignored.
	elements, err := page.Elements(`a[href*="/home/world/"]`)
	if err != nil {
		return nil, fmt.Errorf("query world links: %w", err)
	}

	seen := make(map[string]struct{})
	var records []world.Record
	for _, element := range elements {
		href, err := element.Attribute("href")
		if err != nil || href == nil {
			continue
		}
		worldID := extractWorldID(*href)
		if worldID == "" {
			continue
		}
		if _, ok := seen[worldID]; ok {
			continue
		}
		seen[worldID] = struct{}{}

		name, err := element.Text()
		if err != nil {
			name = ""
		}
		records = append(records, world.Record{
			ID:       worldID,
			Name:     strings.TrimSpace(name),
			AuthorID: userID,
		})
	}

	s.logger.Info("scraped creator worlds",
		logging.String("session", sessionID),
		logging.String("user", userID),
		logging.Int("worlds", len(records)))
	return records, nil
}

func extractWorldID(href string) string {
	idx := strings.Index(href, "/home/world/")
	if idx < 0 {
		return ""
	}
	id := href[idx+len("/home/world/"):]
	if cut := strings.IndexAny(id, "/?#"); cut >= 0 {
		id = id[:cut]
	}
	if !strings.HasPrefix(id, "wrld_") {
		return ""
	}
	return id
}
