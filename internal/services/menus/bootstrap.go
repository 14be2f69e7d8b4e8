package menus

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-billing/internal/catalog"
	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/models"
)

// DefaultMenu is the catalog created by Bootstrap when no name is given
const DefaultMenu = "menu_principal"

// SampleItems are the items every bootstrapped catalog starts with
func SampleItems() []menu.Item {
	return []menu.Item{
		menu.NewBeverage("Coca Cola", decimal.RequireFromString("1.5"), "500ml"),
		menu.NewAppetizer("Papas Fritas", decimal.RequireFromString("3.0"), "grande"),
	}
}

// Bootstrap recreates the named catalog with the sample items
func Bootstrap(ctx context.Context, svc *catalog.Service, log *logger.Logger, name string) error {
	if name == "" {
		name = DefaultMenu
	}
	if err := models.ValidateMenuName(name); err != nil {
		return err
	}
	requestID := logger.RequestID(ctx)

	if err := svc.CreateMenu(ctx, name); err != nil {
		return fmt.Errorf("create menu %s: %w", name, err)
	}
	items := SampleItems()
	for _, item := range items {
		if err := svc.AddMenuItem(ctx, name, item); err != nil {
			return fmt.Errorf("add %s to menu %s: %w", item.Name(), name, err)
		}
	}

	log.Info("menu_created", fmt.Sprintf("Menu %s created", name), requestID, map[string]interface{}{
		"menu":  name,
		"items": len(items),
	})
	return nil
}
