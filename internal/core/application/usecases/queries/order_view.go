package queries

import (
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// UserRef is an actor reference with its display name. Name is empty when the
// directory does not know the id.
type UserRef struct {
	ID   kernel.UUID
	Name string
}

type SupplierView struct {
	Name        string
	ContactInfo string
}

type LineItemView struct {
	ID          kernel.UUID
	SKU         string
	ProductName string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

type ReceivedItemView struct {
	ItemID           kernel.UUID
	ReceivedQuantity int
	Notes            string
}

// OrderView is the read model of a purchase order.
type OrderView struct {
	ID            kernel.UUID
	OrderNumber   string
	Supplier      SupplierView
	Items         []LineItemView
	TotalAmount   decimal.Decimal
	DeliveryDate  time.Time
	Status        string
	CreatedBy     UserRef
	CreatedAt     time.Time
	ApprovedBy    *UserRef
	ApprovedAt    *time.Time
	RejectedBy    *UserRef
	RejectedAt    *time.Time
	ReceivedItems []ReceivedItemView
	DeliveredAt   *time.Time
	Version       int64
}

// NewOrderView maps an aggregate to its read model, taking display names from names.
// A nil map leaves every name empty.
func NewOrderView(o *order.Order, names map[kernel.UUID]string) OrderView {
	view := OrderView{
		ID:          o.ID(),
		OrderNumber: o.Number().String(),
		Supplier: SupplierView{
			Name:        o.Supplier().Name(),
			ContactInfo: o.Supplier().ContactInfo(),
		},
		Items:         make([]LineItemView, 0, len(o.Items())),
		TotalAmount:   o.TotalAmount().Decimal(),
		DeliveryDate:  o.DeliveryDate(),
		Status:        o.Status().String(),
		CreatedBy:     UserRef{ID: o.CreatedBy(), Name: names[o.CreatedBy()]},
		CreatedAt:     o.CreatedAt(),
		ApprovedAt:    o.ApprovedAt(),
		RejectedAt:    o.RejectedAt(),
		ReceivedItems: make([]ReceivedItemView, 0, len(o.ReceivedItems())),
		DeliveredAt:   o.DeliveredAt(),
		Version:       o.Version(),
	}

	if id := o.ApprovedBy(); id != nil {
		view.ApprovedBy = &UserRef{ID: *id, Name: names[*id]}
	}
	if id := o.RejectedBy(); id != nil {
		view.RejectedBy = &UserRef{ID: *id, Name: names[*id]}
	}

	for _, item := range o.Items() {
		view.Items = append(view.Items, LineItemView{
			ID:          item.ID(),
			SKU:         item.SKU(),
			ProductName: item.ProductName(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Decimal(),
		})
	}
	for _, item := range o.ReceivedItems() {
		view.ReceivedItems = append(view.ReceivedItems, ReceivedItemView{
			ItemID:           item.ItemID(),
			ReceivedQuantity: item.ReceivedQuantity(),
			Notes:            item.Notes(),
		})
	}

	return view
}

// actorIDs lists the distinct actors referenced by o.
func actorIDs(o *order.Order) []kernel.UUID {
	ids := []kernel.UUID{o.CreatedBy()}
	for _, id := range []*kernel.UUID{o.ApprovedBy(), o.RejectedBy()} {
		if id != nil && !id.IsEqual(o.CreatedBy()) {
			ids = append(ids, *id)
		}
	}
	return ids
}
