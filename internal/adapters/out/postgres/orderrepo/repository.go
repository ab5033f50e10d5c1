package orderrepo

import (
	"context"
	"errors"

	"purchasing/internal/adapters/out/postgres/pgerrs"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"gorm.io/gorm"
)

const aggregateName = "purchaseOrder"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its items. A taken order number is a storage conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Wrap("insert purchase order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row only if its stored version still equals the version the
// aggregate was loaded with, then replaces the child rows. The stored version is bumped.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"supplier_name":         dto.SupplierName,
				"supplier_contact_info": dto.SupplierContactInfo,
				"total_amount":          dto.TotalAmount,
				"delivery_date":         dto.DeliveryDate,
				"status":                dto.Status,
				"approved_by":           dto.ApprovedBy,
				"approved_at":           dto.ApprovedAt,
				"rejected_by":           dto.RejectedBy,
				"rejected_at":           dto.RejectedAt,
				"delivered_at":          dto.DeliveredAt,
				"version":               gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return pgerrs.Wrap("update purchase order", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate.ID())
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
			return pgerrs.Wrap("replace purchase order items", err)
		}
		if err := tx.Create(&dto.Items).Error; err != nil {
			return pgerrs.Wrap("replace purchase order items", err)
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&ReceivedItemDTO{}).Error; err != nil {
			return pgerrs.Wrap("replace received items", err)
		}
		if len(dto.ReceivedItems) > 0 {
			if err := tx.Create(&dto.ReceivedItems).Error; err != nil {
				return pgerrs.Wrap("replace received items", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return pgerrs.Wrap("check purchase order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(aggregateName, id.String())
	}
	return errs.NewVersionIsInvalidErrorWithCause(aggregateName, errors.New("order was modified concurrently"))
}

// Get retrieves an order with its items and received items in their stored order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position") }

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("ReceivedItems", byPosition).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(aggregateName, id.String())
		}
		return nil, pgerrs.Wrap("select purchase order", err)
	}

	return toDomain(dto)
}

// Delete removes the order; its child rows go with it.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerrs.Wrap("delete purchase order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(aggregateName, id.String())
	}
	return nil
}

// MaxSequence returns the highest stored order number sequence, 0 for an empty table.
func (r *GormOrderRepository) MaxSequence(ctx context.Context) (int64, error) {
	var maxSeq int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("COALESCE(MAX(sequence_no), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, pgerrs.Wrap("select max order sequence", err)
	}
	return maxSeq, nil
}
