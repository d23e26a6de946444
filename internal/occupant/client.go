// Package occupant は入居者サービスから入居者情報を取得するクライアントを提供する。
package occupant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/nao1215/rentwatch/internal/notification"
	"github.com/nao1215/rentwatch/pkg/httpclient"
)

// occupantsPath は入居者一覧API。
const occupantsPath = "/api/v1/occupants"

// Client は入居者サービスのHTTPクライアント。notification.OccupantFinderを実装する。
type Client struct {
	// http は入居者サービスへの通信クライアント。
	http *httpclient.Client
}

// NewClient は新しいClientを生成する。
func NewClient(client *httpclient.Client) *Client {
	return &Client{http: client}
}

// occupantResponse は入居者サービスが返す入居者のJSON構造。
type occupantResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	TerminationDate *time.Time         `json:"termination_date"`
	Documents       []documentResponse `json:"documents"`
	Properties      []propertyResponse `json:"properties"`
}

type documentResponse struct {
	Name           string     `json:"name"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type propertyResponse struct {
	PropertyID string `json:"property_id"`
	Type       string `json:"type"`
}

// FindOccupants はレルムの入居者を指定した順序で取得する。
// レルムはX-Realmヘッダーで伝播する。
func (c *Client) FindOccupants(ctx context.Context, realm string, filter notification.OccupantFilter) ([]notification.Occupant, error) {
	query := url.Values{}
	if filter.OrderBy != "" {
		query.Set("order_by", filter.OrderBy)
		query.Set("order", "asc")
		if filter.Descending {
			query.Set("order", "desc")
		}
	}

	var resp []occupantResponse
	if err := c.http.GetJSON(httpclient.WithRealm(ctx, realm), occupantsPath, query, &resp); err != nil {
		return nil, fmt.Errorf("入居者一覧の取得に失敗: %w", err)
	}

	return toOccupants(resp), nil
}

// ParseOccupants は入居者サービスと同じ形式のJSON配列を入居者に変換する。
func ParseOccupants(data []byte) ([]notification.Occupant, error) {
	var resp []occupantResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("入居者JSONの解析に失敗: %w", err)
	}
	return toOccupants(resp), nil
}

func toOccupants(resp []occupantResponse) []notification.Occupant {
	occupants := make([]notification.Occupant, 0, len(resp))
	for _, r := range resp {
		occupants = append(occupants, r.toOccupant())
	}
	return occupants
}

func (r occupantResponse) toOccupant() notification.Occupant {
	o := notification.Occupant{
		ID:              r.ID,
		Name:            r.Name,
		TerminationDate: r.TerminationDate,
	}
	for _, d := range r.Documents {
		o.Documents = append(o.Documents, notification.Document{Name: d.Name, ExpirationDate: d.ExpirationDate})
	}
	for _, p := range r.Properties {
		o.Properties = append(o.Properties, notification.LeasedProperty{PropertyID: p.PropertyID, Type: p.Type})
	}
	return o
}
