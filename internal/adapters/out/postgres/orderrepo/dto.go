// Package orderrepo persists purchase order aggregates with GORM. An order is stored as
// one row in purchase_orders plus child rows for its line items and received items;
// children are deleted by the database when the order row goes away.
package orderrepo

import (
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the purchase_orders row.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SequenceNo          int64           `gorm:"not null;uniqueIndex"`
	OrderNumber         string          `gorm:"size:32;not null;uniqueIndex"`
	SupplierName        string          `gorm:"not null;index"`
	SupplierContactInfo string          `gorm:"not null;default:''"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryDate        time.Time       `gorm:"type:date;not null"`
	Status              string          `gorm:"size:16;not null;index"`
	CreatedBy           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt           time.Time       `gorm:"not null;index"`
	ApprovedBy          *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt          *time.Time
	RejectedBy          *uuid.UUID `gorm:"type:uuid"`
	RejectedAt          *time.Time
	DeliveredAt         *time.Time
	Version             int64 `gorm:"not null;default:1"`

	Items         []LineItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ReceivedItems []ReceivedItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "purchase_orders"
}

// LineItemDTO is a purchase_order_items row. Position keeps the client's ordering.
type LineItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	SKU         string          `gorm:"not null;default:''"`
	ProductName string          `gorm:"not null;default:''"`
	Description string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "purchase_order_items"
}

// ReceivedItemDTO is a purchase_order_received_items row. ItemID is kept verbatim and is
// deliberately not a foreign key: received lines may reference replaced items.
type ReceivedItemDTO struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Position         int       `gorm:"not null"`
	ItemID           uuid.UUID `gorm:"type:uuid;not null"`
	ReceivedQuantity int       `gorm:"not null"`
	Notes            string    `gorm:"not null;default:''"`
}

func (ReceivedItemDTO) TableName() string {
	return "purchase_order_received_items"
}

// Models lists every table of this package in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &LineItemDTO{}, &ReceivedItemDTO{}}
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	dto := OrderDTO{
		ID:                  id,
		SequenceNo:          o.Number().Sequence(),
		OrderNumber:         o.Number().String(),
		SupplierName:        o.Supplier().Name(),
		SupplierContactInfo: o.Supplier().ContactInfo(),
		TotalAmount:         o.TotalAmount().Decimal(),
		DeliveryDate:        o.DeliveryDate(),
		Status:              o.Status().String(),
		CreatedBy:           o.CreatedBy().Bytes(),
		CreatedAt:           o.CreatedAt(),
		ApprovedBy:          optionalID(o.ApprovedBy()),
		ApprovedAt:          o.ApprovedAt(),
		RejectedBy:          optionalID(o.RejectedBy()),
		RejectedAt:          o.RejectedAt(),
		DeliveredAt:         o.DeliveredAt(),
		Version:             o.Version(),
	}
	dto.Items = lineItemsFromDomain(id, o.Items())
	dto.ReceivedItems = receivedItemsFromDomain(id, o.ReceivedItems())
	return dto
}

func lineItemsFromDomain(orderID uuid.UUID, items []order.LineItem) []LineItemDTO {
	dtos := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, LineItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			Position:    i,
			SKU:         item.SKU(),
			ProductName: item.ProductName(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Decimal(),
		})
	}
	return dtos
}

func receivedItemsFromDomain(orderID uuid.UUID, items []order.ReceivedItem) []ReceivedItemDTO {
	dtos := make([]ReceivedItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, ReceivedItemDTO{
			OrderID:          orderID,
			Position:         i,
			ItemID:           item.ItemID().Bytes(),
			ReceivedQuantity: item.ReceivedQuantity(),
			Notes:            item.Notes(),
		})
	}
	return dtos
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toOptionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reviewer
	}
	restored, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.NewNumber(dto.SequenceNo)
	if err != nil {
		return nil, err
	}
	supplier, err := order.NewSupplier(dto.SupplierName, dto.SupplierContactInfo)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney("totalAmount", dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	approvedBy, err := toOptionalID(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}
	rejectedBy, err := toOptionalID(dto.RejectedBy)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(item.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney("price", item.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, order.RestoreLineItem(itemID, item.SKU, item.ProductName, item.Description, item.Quantity, price))
	}

	received := make([]order.ReceivedItem, 0, len(dto.ReceivedItems))
	for _, item := range dto.ReceivedItems {
		itemID, idErr := kernel.UUIDFromBytes(item.ItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		received = append(received, order.RestoreReceivedItem(itemID, item.ReceivedQuantity, item.Notes))
	}

	return order.RestoreOrder(order.State{
		ID:            id,
		Number:        number,
		Supplier:      supplier,
		Items:         items,
		TotalAmount:   total,
		DeliveryDate:  dto.DeliveryDate.UTC(),
		Status:        status,
		CreatedBy:     createdBy,
		CreatedAt:     dto.CreatedAt.UTC(),
		ApprovedBy:    approvedBy,
		ApprovedAt:    utcPtr(dto.ApprovedAt),
		RejectedBy:    rejectedBy,
		RejectedAt:    utcPtr(dto.RejectedAt),
		ReceivedItems: received,
		DeliveredAt:   utcPtr(dto.DeliveredAt),
		Version:       dto.Version,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
