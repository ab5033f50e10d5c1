package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItemInput is an unvalidated order line as received from a client.
// Nil pointers mean the field was absent.
type LineItemInput struct {
	SKU         string           `json:"sku"`
	ProductName string           `json:"productName"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
}

// ReceivedItemInput is an unvalidated received line as received from a client.
type ReceivedItemInput struct {
	ItemID           string `json:"itemId"`
	ReceivedQuantity *int   `json:"receivedQuantity"`
	Notes            string `json:"notes"`
}

// deliveryDateLayouts lists the accepted forms, date only first.
var deliveryDateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

func buildLineItems(inputs []LineItemInput) ([]order.LineItem, error) {
	if len(inputs) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
	}

	items := make([]order.LineItem, 0, len(inputs))
	var problems []error
	for i, in := range inputs {
		field := fmt.Sprintf("items[%d]", i)

		quantity := 0
		if in.Quantity == nil {
			problems = append(problems, errs.NewValueIsRequiredError(field+".quantity"))
			quantity = 1
		} else {
			quantity = *in.Quantity
		}

		var price kernel.Money
		if in.Price == nil {
			problems = append(problems, errs.NewValueIsRequiredError(field+".price"))
			price = kernel.ZeroMoney()
		} else {
			var err error
			if price, err = kernel.NewMoney(field+".price", *in.Price); err != nil {
				problems = append(problems, err)
				price = kernel.ZeroMoney()
			}
		}

		item, err := order.NewLineItem(field, in.SKU, in.ProductName, in.Description, quantity, price)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

func buildReceivedItems(inputs []ReceivedItemInput) ([]order.ReceivedItem, error) {
	if inputs == nil {
		return nil, errs.NewValueIsRequiredError("receivedItems")
	}

	items := make([]order.ReceivedItem, 0, len(inputs))
	var problems []error
	for i, in := range inputs {
		field := fmt.Sprintf("receivedItems[%d]", i)

		itemID, err := kernel.ParseUUID(field+".itemId", in.ItemID)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if in.ReceivedQuantity == nil {
			problems = append(problems, errs.NewValueIsRequiredError(field+".receivedQuantity"))
			continue
		}

		item, err := order.NewReceivedItem(field, itemID, *in.ReceivedQuantity, in.Notes)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

func parseTotalAmount(amount *decimal.Decimal) (kernel.Money, error) {
	if amount == nil {
		return kernel.Money{}, errs.NewValueIsRequiredError("totalAmount")
	}
	return kernel.NewMoney("totalAmount", *amount)
}

func parseDeliveryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errs.NewValueIsRequiredError("deliveryDate")
	}
	for _, layout := range deliveryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
		"deliveryDate",
		fmt.Errorf("%q is neither YYYY-MM-DD nor RFC 3339", s),
	)
}

func parseOrderID(s string) (kernel.UUID, error) {
	return kernel.ParseUUID("id", s)
}
