package services

import (
	"time"

	"lodging-backend/models"
)

// ChargeCatalog is what the ledger needs from storage.
type ChargeCatalog interface {
	// FindChargeableItems returns the items that exist, keyed by id. Missing ids
	// are simply absent from the map.
	FindChargeableItems(ids []uint) (map[uint]models.ChargeableItem, error)
	CreateCharges(charges []models.BookingCharge) error
}

// ChargeLine is one damage/loss line submitted at checkout.
type ChargeLine struct {
	ChargeableItemID uint `json:"chargeable_item_id"`
	Quantity         int  `json:"quantity"`
}

// SkippedCharge is a submitted line that could not be billed.
type SkippedCharge struct {
	Line             int    `json:"line"`
	ChargeableItemID uint   `json:"chargeable_item_id"`
	Reason           string `json:"reason"`
}

// LedgerResult is the outcome of attaching charges to a booking.
type LedgerResult struct {
	Total   int64                  `json:"total"`
	Charges []models.BookingCharge `json:"charges"`
	Skipped []SkippedCharge        `json:"skipped"`
}

// ChargeLedger freezes catalog prices into booking charges.
type ChargeLedger struct{}

func validateChargeLines(lines []ChargeLine) error {
	for i, line := range lines {
		if line.ChargeableItemID == 0 {
			return invalidInput("invalid_charge_line", "charge line %d: chargeable_item_id is required", i)
		}
		if line.Quantity <= 0 {
			return invalidInput("invalid_charge_line", "charge line %d: quantity must be positive", i)
		}
	}
	return nil
}

// Attach prices every line at the item's current catalog price and writes the
// charges. Lines whose item no longer exists are skipped and reported.
func (ChargeLedger) Attach(catalog ChargeCatalog, bookingID uint, lines []ChargeLine, at time.Time) (LedgerResult, error) {
	result := LedgerResult{Charges: []models.BookingCharge{}, Skipped: []SkippedCharge{}}
	if len(lines) == 0 {
		return result, nil
	}
	if err := validateChargeLines(lines); err != nil {
		return result, err
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ChargeableItemID]; !ok {
			seen[line.ChargeableItemID] = struct{}{}
			ids = append(ids, line.ChargeableItemID)
		}
	}

	items, err := catalog.FindChargeableItems(ids)
	if err != nil {
		return result, err
	}

	for i, line := range lines {
		item, ok := items[line.ChargeableItemID]
		if !ok {
			result.Skipped = append(result.Skipped, SkippedCharge{
				Line:             i,
				ChargeableItemID: line.ChargeableItemID,
				Reason:           "chargeable item not found",
			})
			continue
		}

		amount := item.ChargeAmount * int64(line.Quantity)
		result.Charges = append(result.Charges, models.BookingCharge{
			BookingID:        bookingID,
			ChargeableItemID: item.ID,
			ItemName:         item.ItemName,
			UnitPrice:        item.ChargeAmount,
			Quantity:         line.Quantity,
			ChargeAtMoment:   amount,
			CreatedAt:        at,
		})
		result.Total += amount
	}

	if len(result.Charges) > 0 {
		if err := catalog.CreateCharges(result.Charges); err != nil {
			return result, err
		}
	}
	return result, nil
}
