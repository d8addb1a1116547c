package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       float64 `db:"price" json:"price"`
	Sized       bool    `db:"sized" json:"sized"` // true when stock is tracked per size
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// SizeStock is one ledger row for a product. Size is "" for products
// that keep a single scalar count.
type SizeStock struct {
	Size string `db:"size" json:"size"`
	Qty  int    `db:"qty" json:"stock"`
}

// Reservation is a non-binding, time-limited hold. It counts toward
// reserved quantity for its (product, size) key only while expiresAt
// is in the future; rows past expiry may still exist in storage.
type Reservation struct {
	ID        string `db:"id" json:"id"`
	OwnerID   string `db:"owner_id" json:"-"`
	ProductID string `db:"product_id" json:"productId"`
	Size      string `db:"size" json:"size"`
	Qty       int    `db:"qty" json:"quantity"`
	ExpiresAt string `db:"expires_at" json:"expiresAt"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         string      `db:"id" json:"id"`
	OwnerID    string      `db:"owner_id" json:"-"`
	Total      float64     `db:"total" json:"total"`
	Status     OrderStatus `db:"status" json:"status"`
	PaymentRef string      `db:"payment_ref" json:"paymentRef,omitempty"`
	CreatedAt  string      `db:"created_at" json:"createdAt"`
}

// OrderItem is a point-in-time snapshot; title and price are copied
// from the product at settlement and never follow later catalog edits.
type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"productId"`
	Title     string  `db:"title" json:"title"`
	Size      string  `db:"size" json:"size"`
	Qty       int     `db:"qty" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`    // sellable = raw stock minus live holds
}
