package domain

// Payment statuses allowed on an invoice.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
	PaymentStatusUnpaid  = "Unpaid"
)

// Stock transaction types.
const (
	StockTypePurchase   = "Purchase"
	StockTypeSale       = "Sale"
	StockTypeAdjustment = "Adjustment"
	StockTypeReturn     = "Return"
)

type Customer struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	Email     string `db:"email" json:"email"`
	Notes     string `db:"notes" json:"notes"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

type Unit struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Abbreviation string `db:"abbreviation" json:"abbreviation"`
}

// Product stock is REAL: fractional units (kg, m) are sold.
// CategoryName/UnitName come from LEFT JOINs; empty when the reference is
// missing or orphaned.
type Product struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	SKU           string  `db:"sku" json:"sku"`
	Barcode       string  `db:"barcode" json:"barcode"`
	PurchasePrice float64 `db:"purchase_price" json:"purchasePrice"`
	SellingPrice  float64 `db:"selling_price" json:"sellingPrice"`
	CurrentStock  float64 `db:"current_stock" json:"currentStock"`
	MinStockLevel float64 `db:"min_stock_level" json:"minStockLevel"`
	Image         string  `db:"image" json:"image"`
	CategoryID    *int64  `db:"category_id" json:"categoryId"`
	UnitID        *int64  `db:"unit_id" json:"unitId"`
	CategoryName  string  `db:"category_name" json:"categoryName"`
	UnitName      string  `db:"unit_name" json:"unitName"`
	UnitAbbr      string  `db:"unit_abbreviation" json:"unitAbbreviation"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// Invoice keeps the historical column split: TotalAmount is the line
// subtotal, FinalAmount is subtotal - discount + tax. CustomerID nil means a
// walk-in sale.
type Invoice struct {
	ID            int64   `db:"id" json:"id"`
	InvoiceNumber string  `db:"invoice_number" json:"invoiceNumber"`
	Date          string  `db:"date" json:"date"`
	TotalAmount   float64 `db:"total_amount" json:"totalAmount"`
	Discount      float64 `db:"discount" json:"discount"`
	Tax           float64 `db:"tax" json:"tax"`
	FinalAmount   float64 `db:"final_amount" json:"finalAmount"`
	PaymentMethod string  `db:"payment_method" json:"paymentMethod"`
	PaymentStatus string  `db:"payment_status" json:"paymentStatus"`
	Notes         string  `db:"notes" json:"notes"`
	CustomerID    *int64  `db:"customer_id" json:"customerId"`
	CustomerName  string  `db:"customer_name" json:"customerName"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// InvoiceItem captures quantity and unit price at time of sale; later price
// changes on the product never alter past invoices.
type InvoiceItem struct {
	ID          int64   `db:"id" json:"id"`
	InvoiceID   int64   `db:"invoice_id" json:"invoiceId"`
	ProductID   int64   `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Unit        string  `db:"unit" json:"unit"`
	Quantity    float64 `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
	Discount    float64 `db:"discount" json:"discount"`
	Total       float64 `db:"total" json:"total"`
}

type StockTransaction struct {
	ID        int64   `db:"id" json:"id"`
	Type      string  `db:"type" json:"type"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	Date      string  `db:"date" json:"date"`
	Notes     string  `db:"notes" json:"notes"`
	ProductID int64   `db:"product_id" json:"productId"`
}

// Rows returned by the report queries.

type DailySales struct {
	Total float64 `db:"total" json:"total"`
	Count int     `db:"count" json:"count"`
}

type SalesByDay struct {
	SaleDate string  `db:"sale_date" json:"saleDate"`
	Total    float64 `db:"total" json:"total"`
	Count    int     `db:"count" json:"count"`
}

type TopProduct struct {
	ProductID    int64   `db:"id" json:"productId"`
	Name         string  `db:"name" json:"name"`
	QuantitySold float64 `db:"quantity_sold" json:"quantitySold"`
	TotalSales   float64 `db:"total_sales" json:"totalSales"`
}

type CustomerSale struct {
	Invoice
	ItemCount int `db:"item_count" json:"itemCount"`
}

type DashboardMetrics struct {
	TotalProducts  int        `json:"totalProducts"`
	TotalCustomers int        `json:"totalCustomers"`
	LowStockItems  int        `json:"lowStockItems"`
	TodaySales     DailySales `json:"todaySales"`
}
