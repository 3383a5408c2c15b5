package models

// ProductVariant is one sellable size of a product.
type ProductVariant struct {
	Size     string `bson:"size" json:"size"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Product is a shop catalog item.
type Product struct {
	ID          string           `bson:"id" json:"id"`
	Name        string           `bson:"name" json:"name"`
	Price       float64          `bson:"price" json:"price"`
	SalePercent float64          `bson:"salePercent" json:"salePercent"`
	SalePrice   float64          `bson:"salePrice" json:"salePrice"`
	Variants    []ProductVariant `bson:"variants" json:"variants"`
	TotalSold   int              `bson:"totalSold" json:"totalSold"`
}

// OnSale reports whether the product currently has an active discount.
func (p *Product) OnSale() bool {
	return p.SalePercent > 0
}

// StockQuantity is the sum of all variant quantities.
func (p *Product) StockQuantity() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}
