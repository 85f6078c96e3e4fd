package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/pkg/utils"
)

const vkAPIVersion = "5.131"

// VKClient pulls posts from VK community walls through the public API.
// Same contract as the feed client: failures are an empty result.
type VKClient struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewVKClient returns nil when no access token is configured; callers treat
// a nil client as "source disabled".
func NewVKClient(token string, timeout time.Duration) *VKClient {
	if token == "" {
		return nil
	}
	return &VKClient{
		http:    &http.Client{Timeout: timeout},
		baseURL: "https://api.vk.com/method",
		token:   token,
	}
}

type vkWallResponse struct {
	Error *struct {
		ErrorMsg string `json:"error_msg"`
	} `json:"error"`
	Response struct {
		Items []struct {
			ID   int64  `json:"id"`
			Date int64  `json:"date"`
			Text string `json:"text"`
		} `json:"items"`
	} `json:"response"`
}

// FetchWall loads up to count posts from the wall of a community. Post text
// becomes the body; the title is the first hundred runes of it.
func (c *VKClient) FetchWall(ctx context.Context, groupID int64, count int) ([]models.ContentItem, Status) {
	items, status := c.fetchWall(ctx, groupID, count)
	metrics.RecordFetch(fmt.Sprintf("vk:%d", groupID), string(status))
	if status != StatusOK {
		logger.Debug("vk wall fetch yielded nothing", "group_id", groupID, "status", status)
	}
	return items, status
}

func (c *VKClient) fetchWall(ctx context.Context, groupID int64, count int) ([]models.ContentItem, Status) {
	if count > 100 {
		count = 100
	}

	params := url.Values{}
	params.Set("owner_id", fmt.Sprintf("-%d", groupID))
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("access_token", c.token)
	params.Set("v", vkAPIVersion)
	params.Set("filter", "owner")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/wall.get?"+params.Encode(), nil)
	if err != nil {
		return nil, StatusTransport
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, StatusTransport
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, StatusHTTPError
	}

	var data vkWallResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, StatusBadPayload
	}
	if data.Error != nil {
		logger.Debug("vk api error", "group_id", groupID, "error", data.Error.ErrorMsg)
		return nil, StatusBadPayload
	}

	var items []models.ContentItem
	for _, post := range data.Response.Items {
		text := strings.TrimSpace(post.Text)
		if text == "" {
			continue
		}
		title := strings.ReplaceAll(utils.Truncate(text, 100), "\n", " ")
		item := models.ContentItem{
			Title: strings.TrimSpace(title),
			Link:  fmt.Sprintf("https://vk.com/wall-%d_%d", groupID, post.ID),
			Body:  text,
		}
		if post.Date > 0 {
			item.PublishedAt = time.Unix(post.Date, 0).UTC()
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, StatusEmpty
	}
	return items, StatusOK
}
