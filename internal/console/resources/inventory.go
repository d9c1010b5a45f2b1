package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// Category groups inventory items.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is an inventory stock record.
type Item struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	SKU        string              `json:"sku"`
	Quantity   normalize.FlexInt   `json:"quantity"`
	UnitPrice  normalize.FlexFloat `json:"unitPrice"`
	Status     string              `json:"status"`
	CategoryID string              `json:"categoryId"`
	Category   *Category           `json:"category"`
	UpdatedAt  normalize.Timestamp `json:"updatedAt"`

	CategoryName string `json:"-"`
	StatusLabel  string `json:"-"`
}

func (i *Item) derive() {
	if i.Category != nil {
		i.CategoryName = i.Category.Name
		if i.CategoryID == "" {
			i.CategoryID = i.Category.ID
		}
	}
	i.StatusLabel = normalize.DisplayLabel(i.Status)
}

// ItemInput creates or updates an item.
type ItemInput struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice,omitempty"`
	CategoryID string  `json:"categoryId,omitempty"`
}

// StockAdjustment moves an item's quantity by a signed delta.
type StockAdjustment struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// InventoryService manages inventory items and categories.
type InventoryService interface {
	ListItems(ctx context.Context, categoryID string) (Paged[Item], error)
	CreateItem(ctx context.Context, input ItemInput) (*Item, error)
	UpdateItem(ctx context.Context, id string, input ItemInput) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)
	AdjustStock(ctx context.Context, itemID string, adjustment StockAdjustment) (*Item, error)
}

type inventoryService struct {
	client Doer
	logger *slog.Logger
}

// NewInventoryService creates the inventory service.
func NewInventoryService(d Doer, logger *slog.Logger) InventoryService {
	return &inventoryService{client: d, logger: logger}
}

func (s *inventoryService) ListItems(ctx context.Context, categoryID string) (Paged[Item], error) {
	values := url.Values{}
	if categoryID != "" {
		values.Set("categoryId", categoryID)
	}

	page, err := fetchList[Item](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/inventory/items",
		Query:  values,
	}, "items")
	if err != nil {
		return page, err
	}
	for i := range page.Items {
		page.Items[i].derive()
	}
	return page, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, input ItemInput) (*Item, error) {
	item, err := fetchOne[Item](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/inventory/items",
		Body:   input,
	})
	if err != nil || item == nil {
		return item, err
	}
	item.derive()
	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, input ItemInput) (*Item, error) {
	item, err := fetchOne[Item](ctx, s.client, client.Request{
		Method: http.MethodPut,
		Path:   "/inventory/items/" + id,
		Body:   input,
	})
	if err != nil || item == nil {
		return item, err
	}
	item.derive()
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodDelete,
		Path:   "/inventory/items/" + id,
	})
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]Category, error) {
	page, err := fetchList[Category](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/inventory/categories",
	}, "categories")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, itemID string, adjustment StockAdjustment) (*Item, error) {
	item, err := fetchOne[Item](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/inventory/items/" + itemID + "/adjust",
		Body:   adjustment,
	})
	if err != nil || item == nil {
		return item, err
	}
	item.derive()
	return item, nil
}
