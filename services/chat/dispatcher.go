package chat

import (
	"context"
	"fmt"
	"strings"

	productRepo "pitchbook/database/repository/product"
	"pitchbook/models"
	"pitchbook/services/weather"
	"pitchbook/utils"

	"go.uber.org/zap"
)

const (
	unsupportedMessage   = "Xin lỗi, mình chưa hỗ trợ yêu cầu này. Bạn thử hỏi cách khác nhé."
	pickProductMessage   = "Bạn muốn hỏi về sản phẩm nào ạ? Cho mình xin tên sản phẩm nhé."
	weatherFailedMessage = "Xin lỗi, mình chưa lấy được thông tin thời tiết lúc này. Bạn thử lại sau nhé."
)

// Dispatcher executes the business logic behind a classified action. It is
// the sole owner of the session context store: product/size references
// resolved here are what make pronouns resolve on the next turn.
type Dispatcher struct {
	products    productRepo.ProductRepository
	sessions    SessionContextStore
	weather     weather.Service
	defaultCity string
	logger      *zap.Logger
}

func NewDispatcher(products productRepo.ProductRepository, sessions SessionContextStore, weatherSvc weather.Service, defaultCity string) *Dispatcher {
	return &Dispatcher{
		products:    products,
		sessions:    sessions,
		weather:     weatherSvc,
		defaultCity: defaultCity,
		logger:      utils.GetLogger(),
	}
}

// Dispatch routes res.Data["action"] to its handler, mutating Message and
// Data in place and returning the same response. Unknown tags get the
// default unsupported reply; collaborator failures become user-facing
// messages, never faults.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, res *models.IntentResponse) *models.IntentResponse {
	action, ok := ParseAction(res.Action())
	if !ok {
		res.Message = unsupportedMessage
		return res
	}

	sc, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		d.logger.Error("failed to load session context", zap.String("session", sessionID), zap.Error(err))
		sc = &models.SessionContext{}
	}

	dirty := false
	switch action {
	case ActionGetWeather:
		d.handleWeather(ctx, res)
	case ActionListOnSale:
		d.handleListOnSale(res)
	case ActionCountOnSale:
		d.handleCountOnSale(res)
	case ActionMaxDiscountProduct:
		d.handleMaxDiscount(res)
	case ActionCheckOnSale:
		dirty = d.handleCheckOnSale(res, sc)
	case ActionCheapestProduct:
		dirty = d.handleByPrice(res, sc, false)
	case ActionMostExpensive:
		dirty = d.handleByPrice(res, sc, true)
	case ActionBestSellingProduct:
		dirty = d.handleBestSelling(res, sc)
	case ActionProductDetail:
		dirty = d.handleProductDetail(res, sc)
	case ActionCheckStock:
		dirty = d.handleCheckStock(res, sc)
	case ActionCheckSales, ActionCheckSalesContext:
		dirty = d.handleCheckSales(res, sc)
	case ActionCheckSize:
		dirty = d.handleCheckSize(res, sc)
	case ActionPrepareOrder:
		dirty = d.handlePrepareOrder(res, sc)
	default:
		res.Message = unsupportedMessage
	}

	if dirty {
		if err := d.sessions.Set(ctx, sessionID, sc); err != nil {
			d.logger.Error("failed to save session context", zap.String("session", sessionID), zap.Error(err))
		}
	}
	return res
}

// resolveProduct applies the uniform resolution rule: explicit name first,
// then the session's last-referenced product. Both missing yields (nil, nil).
func (d *Dispatcher) resolveProduct(sc *models.SessionContext, name string) (*models.Product, error) {
	if name != "" {
		p, err := d.products.GetByName(name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	if sc.LastProduct != nil {
		return sc.LastProduct, nil
	}
	return nil, nil
}

func (d *Dispatcher) failCatalog(res *models.IntentResponse, err error) {
	d.logger.Error("catalog lookup failed", zap.Error(err))
	res.Message = outageMessage
}

func (d *Dispatcher) handleWeather(ctx context.Context, res *models.IntentResponse) {
	city := res.DataString("city")
	if city == "" {
		city = d.defaultCity
	}
	desc, err := d.weather.GetCurrentWeather(ctx, city)
	if err != nil {
		d.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		res.Message = weatherFailedMessage
		res.Data = map[string]interface{}{}
		return
	}
	res.Message = fmt.Sprintf("Thời tiết tại %s hiện tại: %s.", city, desc)
	res.Data = map[string]interface{}{}
}

func (d *Dispatcher) onSaleProducts() ([]models.Product, error) {
	products, err := d.products.GetAll()
	if err != nil {
		return nil, err
	}
	onSale := []models.Product{}
	for _, p := range products {
		if p.OnSale() {
			onSale = append(onSale, p)
		}
	}
	return onSale, nil
}

func (d *Dispatcher) handleListOnSale(res *models.IntentResponse) {
	onSale, err := d.onSaleProducts()
	if err != nil {
		d.failCatalog(res, err)
		return
	}
	res.Message = fmt.Sprintf("Hiện có %d sản phẩm đang giảm giá, mình gửi danh sách cho bạn nhé.", len(onSale))
	res.Data["products"] = onSale
}

func (d *Dispatcher) handleCountOnSale(res *models.IntentResponse) {
	onSale, err := d.onSaleProducts()
	if err != nil {
		d.failCatalog(res, err)
		return
	}
	res.Message = fmt.Sprintf("Hiện có %d sản phẩm đang được giảm giá.", len(onSale))
}

func (d *Dispatcher) handleMaxDiscount(res *models.IntentResponse) {
	onSale, err := d.onSaleProducts()
	if err != nil {
		d.failCatalog(res, err)
		return
	}
	if len(onSale) == 0 {
		res.Message = "Hiện chưa có sản phẩm nào đang giảm giá."
		return
	}
	best := onSale[0]
	for _, p := range onSale[1:] {
		if p.SalePercent > best.SalePercent {
			best = p
		}
	}
	res.Message = fmt.Sprintf("Sản phẩm giảm sâu nhất là %s, giảm %.0f%% chỉ còn %.0f₫.", best.Name, best.SalePercent, best.SalePrice)
	res.Data["product"] = best
}

func (d *Dispatcher) handleCheckOnSale(res *models.IntentResponse, sc *models.SessionContext) bool {
	p, err := d.resolveProduct(sc, res.DataString("productName"))
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if p == nil {
		res.Message = pickProductMessage
		return false
	}
	if p.OnSale() {
		res.Message = fmt.Sprintf("%s đang giảm %.0f%%, giá chỉ còn %.0f₫.", p.Name, p.SalePercent, p.SalePrice)
	} else {
		res.Message = fmt.Sprintf("%s hiện không nằm trong chương trình giảm giá.", p.Name)
	}
	res.Data["product"] = p
	sc.LastProduct = p
	return true
}

func (d *Dispatcher) handleByPrice(res *models.IntentResponse, sc *models.SessionContext, expensive bool) bool {
	products, err := d.products.GetAll()
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if len(products) == 0 {
		res.Message = "Cửa hàng hiện chưa có sản phẩm nào."
		return false
	}
	best := products[0]
	for _, p := range products[1:] {
		if (expensive && p.Price > best.Price) || (!expensive && p.Price < best.Price) {
			best = p
		}
	}
	if expensive {
		res.Message = fmt.Sprintf("Sản phẩm đắt nhất hiện nay là %s với giá %.0f₫.", best.Name, best.Price)
	} else {
		res.Message = fmt.Sprintf("Sản phẩm rẻ nhất hiện nay là %s với giá %.0f₫.", best.Name, best.Price)
	}
	res.Data["product"] = best
	sc.LastProduct = &best
	return true
}

func (d *Dispatcher) handleBestSelling(res *models.IntentResponse, sc *models.SessionContext) bool {
	top, err := d.products.GetTopSelling(1)
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if len(top) == 0 {
		res.Message = "Cửa hàng hiện chưa có sản phẩm nào."
		return false
	}
	best := top[0]
	res.Message = fmt.Sprintf("Sản phẩm bán chạy nhất hiện nay là %s.", best.Name)
	res.Data["product"] = best
	sc.LastProduct = &best
	return true
}

func (d *Dispatcher) handleProductDetail(res *models.IntentResponse, sc *models.SessionContext) bool {
	name := res.DataString("productName")
	p, err := d.resolveProduct(sc, name)
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if p == nil {
		if name != "" {
			res.Message = fmt.Sprintf("Mình không tìm thấy sản phẩm %q trong cửa hàng.", name)
		} else {
			res.Message = pickProductMessage
		}
		return false
	}
	res.Message = fmt.Sprintf("Đây là thông tin chi tiết về %s.", p.Name)
	res.Data["product"] = p
	sc.LastProduct = p
	return true
}

func (d *Dispatcher) handleCheckStock(res *models.IntentResponse, sc *models.SessionContext) bool {
	p, err := d.resolveProduct(sc, res.DataString("productName"))
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if p == nil {
		res.Message = pickProductMessage
		return false
	}
	if p.StockQuantity() > 0 {
		res.Message = fmt.Sprintf("%s hiện vẫn còn hàng tại cửa hàng.", p.Name)
	} else {
		res.Message = fmt.Sprintf("%s hiện đã hết hàng.", p.Name)
	}
	res.Data["product"] = p
	sc.LastProduct = p
	return true
}

func (d *Dispatcher) handleCheckSales(res *models.IntentResponse, sc *models.SessionContext) bool {
	p, err := d.resolveProduct(sc, res.DataString("productName"))
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if p == nil {
		res.Message = pickProductMessage
		return false
	}
	if p.TotalSold > 0 {
		res.Message = fmt.Sprintf("%s đã bán được %d chiếc. Sản phẩm đang được quan tâm đấy!", p.Name, p.TotalSold)
	} else {
		res.Message = fmt.Sprintf("%s hiện chưa có lượt bán nào.", p.Name)
	}
	res.Data["product"] = p
	sc.LastProduct = p
	return true
}

// handleCheckSize keeps a deliberate asymmetry: a size missing from the
// variant list does NOT update the session's last size, while a size found
// with zero quantity DOES (the size was recognized, just unavailable).
func (d *Dispatcher) handleCheckSize(res *models.IntentResponse, sc *models.SessionContext) bool {
	p, err := d.resolveProduct(sc, res.DataString("productName"))
	if err != nil {
		d.failCatalog(res, err)
		return false
	}
	if p == nil {
		res.Message = "Bạn muốn kiểm tra size của sản phẩm nào ạ?"
		return false
	}

	dirty := sc.LastProduct == nil || sc.LastProduct.ID != p.ID
	sc.LastProduct = p

	size := strings.TrimSpace(res.DataString("size"))
	if size == "" {
		res.Message = fmt.Sprintf("Bạn muốn kiểm tra size nào của %s ạ?", p.Name)
		res.Data["product"] = p
		return dirty
	}

	var variant *models.ProductVariant
	for i := range p.Variants {
		if strings.EqualFold(p.Variants[i].Size, size) {
			variant = &p.Variants[i]
			break
		}
	}

	res.Data["product"] = p
	switch {
	case variant == nil:
		res.Message = fmt.Sprintf("%s không có size %s.", p.Name, size)
	case variant.Quantity > 0:
		res.Message = fmt.Sprintf("Size %s của %s còn %d chiếc.", size, p.Name, variant.Quantity)
		sc.LastSize = size
		dirty = true
	default:
		res.Message = fmt.Sprintf("Size %s của %s hiện đã hết hàng.", size, p.Name)
		sc.LastSize = size
		dirty = true
	}
	return dirty
}

func (d *Dispatcher) handlePrepareOrder(res *models.IntentResponse, sc *models.SessionContext) bool {
	if sc.LastProduct == nil {
		res.Message = "Bạn muốn đặt sản phẩm nào ạ? Hãy chọn sản phẩm trước nhé."
		return false
	}

	size := strings.TrimSpace(res.DataString("size"))
	if size == "" {
		size = sc.LastSize
	}
	if size == "" {
		res.Message = fmt.Sprintf("Bạn muốn đặt %s size nào ạ?", sc.LastProduct.Name)
		return false
	}

	quantity := res.Data["quantity"]

	// Repurpose the data payload as the ready-to-order signal.
	res.Data = map[string]interface{}{
		"action":       string(ActionReadyToOrder),
		"product":      sc.LastProduct,
		"selectedSize": size,
	}
	if quantity != nil {
		res.Data["quantity"] = quantity
	}
	res.Message = fmt.Sprintf("Bạn muốn chốt đơn %s size %s đúng không? Xác nhận giúp mình nhé!", sc.LastProduct.Name, size)

	dirty := sc.LastSize != size
	sc.LastSize = size
	return dirty
}
