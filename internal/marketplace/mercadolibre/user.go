package mercadolibre

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

const opUserItems = "user items"

// User is the account behind an access token.
type User struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

// UserItems lists the item IDs published by a seller.
type UserItems struct {
	SellerID int64    `json:"seller_id"`
	Results  []string `json:"results"`
	Paging   Paging   `json:"paging"`
}

// Paging mirrors the API's pagination block; only the first page is fetched.
type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MyItems resolves the token's owner via /users/me and returns the first
// page of their published items.
func (c *Client) MyItems(ctx context.Context, accessToken string) (UserItems, error) {
	if accessToken == "" {
		return UserItems{}, marketplace.ErrMissingCredential
	}

	var user User
	if err := c.getJSON(ctx, opUserItems, c.cfg.BaseURL+"/users/me", accessToken, &user); err != nil {
		return UserItems{}, err
	}

	var items UserItems
	itemsURL := fmt.Sprintf("%s/users/%d/items/search", c.cfg.BaseURL, user.ID)
	if err := c.getJSON(ctx, opUserItems, itemsURL, accessToken, &items); err != nil {
		return UserItems{}, err
	}
	if items.SellerID == 0 {
		items.SellerID = user.ID
	}

	c.logger.Info("fetched user items",
		slog.Int64("user_id", user.ID),
		slog.Int("items", len(items.Results)),
	)
	return items, nil
}
