package models

// Product represents a product in the catalog. Catalog data is read-only;
// the cart never mutates it.
type Product struct {
	ID             string            `db:"id" json:"id"`
	Name           string            `db:"name" json:"name"`
	Description    string            `db:"description" json:"description,omitempty"`
	Price          float64           `db:"price" json:"price"`
	Category       string            `db:"category" json:"category"`
	ImageURL       string            `db:"image_url" json:"image_url,omitempty"`
	Images         []string          `db:"-" json:"images,omitempty"`
	Specifications map[string]string `db:"-" json:"specifications,omitempty"`
	Popularity     int               `db:"popularity" json:"popularity,omitempty"`
	Rating         float64           `db:"rating" json:"rating,omitempty"`
}

// CartLine binds a product to a quantity. Name, price and category are
// snapshotted at time of add: merging a duplicate add keeps the original
// values ("first add wins").
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// NewCartLine snapshots a product into a cart line.
func NewCartLine(p *Product, quantity int) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		Quantity:  quantity,
	}
}

// Cart mutation operations, used in events and metrics labels.
const (
	CartOpAdd         = "ADD"
	CartOpRemove      = "REMOVE"
	CartOpSetQuantity = "SET_QUANTITY"
	CartOpClear       = "CLEAR"
)
