package chat

import "strings"

// Action identifies the business-logic branch handling a classified intent.
type Action string

const (
	ActionGetWeather          Action = "get_weather"
	ActionListOnSale          Action = "list_on_sale"
	ActionCountOnSale         Action = "count_on_sale"
	ActionMaxDiscountProduct  Action = "max_discount_product"
	ActionCheckOnSale         Action = "check_on_sale"
	ActionCheapestProduct     Action = "cheapest_product"
	ActionMostExpensive       Action = "most_expensive_product"
	ActionBestSellingProduct  Action = "best_selling_product"
	ActionProductDetail       Action = "product_detail"
	ActionCheckStock          Action = "check_stock"
	ActionCheckSales          Action = "check_sales"
	ActionCheckSalesContext   Action = "check_sales_context"
	ActionCheckSize           Action = "check_size"
	ActionPrepareOrder        Action = "prepare_order"
	// ActionReadyToOrder is emitted by the dispatcher when an order is fully
	// specified; it is never accepted as classifier input.
	ActionReadyToOrder Action = "ready_to_order"
)

// dispatchableActions is the closed vocabulary the dispatcher accepts.
var dispatchableActions = map[Action]bool{
	ActionGetWeather:         true,
	ActionListOnSale:         true,
	ActionCountOnSale:        true,
	ActionMaxDiscountProduct: true,
	ActionCheckOnSale:        true,
	ActionCheapestProduct:    true,
	ActionMostExpensive:      true,
	ActionBestSellingProduct: true,
	ActionProductDetail:      true,
	ActionCheckStock:         true,
	ActionCheckSales:         true,
	ActionCheckSalesContext:  true,
	ActionCheckSize:          true,
	ActionPrepareOrder:       true,
}

// ParseAction maps a raw tag onto the closed action set.
func ParseAction(tag string) (Action, bool) {
	a := Action(strings.TrimSpace(tag))
	return a, dispatchableActions[a]
}

// shopActionKeywords route an action tag to the shop dispatcher.
var shopActionKeywords = []string{"product", "stock", "sales", "sale", "size", "order"}

// IsShopAction reports whether the tag belongs to the product/shop family.
func IsShopAction(tag string) bool {
	for _, kw := range shopActionKeywords {
		if strings.Contains(tag, kw) {
			return true
		}
	}
	return false
}
