package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/nutri-contracts/internal/model"
)

const slotInsertBatchSize = 200

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type slotRow struct {
	ID               uuid.UUID       `gorm:"column:id;primaryKey"`
	ContractID       uuid.UUID       `gorm:"column:contract_id"`
	DeliveryDate     time.Time       `gorm:"column:delivery_date;type:date"`
	PreferredTime    model.TimeOfDay `gorm:"column:preferred_time"`
	DeliveryAddress  string          `gorm:"column:delivery_address"`
	IsNonDeliveryDay bool            `gorm:"column:is_non_delivery_day"`
	Version          int             `gorm:"column:version"`
}

func (slotRow) TableName() string { return "delivery_slots" }

func toSlotRow(slot model.DeliverySlot) slotRow {
	return slotRow{
		ID:               slot.ID,
		ContractID:       slot.ContractID,
		DeliveryDate:     model.DateOnly(slot.Date),
		PreferredTime:    slot.PreferredTime,
		DeliveryAddress:  slot.DeliveryAddress,
		IsNonDeliveryDay: slot.IsNonDeliveryDay,
		Version:          slot.Version,
	}
}

func (row slotRow) toModel() model.DeliverySlot {
	return model.DeliverySlot{
		ID:               row.ID,
		ContractID:       row.ContractID,
		Date:             model.DateOnly(row.DeliveryDate),
		PreferredTime:    row.PreferredTime,
		DeliveryAddress:  row.DeliveryAddress,
		IsNonDeliveryDay: row.IsNonDeliveryDay,
		Version:          row.Version,
	}
}

const slotColumns = `id, contract_id, delivery_date, preferred_time, delivery_address, is_non_delivery_day, version`

// SaveBatch inserts all slots of one calendar. Call it inside a transaction to
// keep the batch all-or-nothing.
func (r *CalendarRepository) SaveBatch(ctx context.Context, slots []model.DeliverySlot) error {
	if len(slots) == 0 {
		return nil
	}
	rows := make([]slotRow, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, toSlotRow(slot))
	}
	return translate(conn(ctx, r.db).CreateInBatches(&rows, slotInsertBatchSize).Error)
}

func (r *CalendarRepository) ByID(ctx context.Context, id uuid.UUID) (*model.DeliverySlot, error) {
	var row slotRow
	if err := conn(ctx, r.db).Raw(`
		SELECT `+slotColumns+`
		FROM delivery_slots
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, translate(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	slot := row.toModel()
	return &slot, nil
}

func (r *CalendarRepository) ByContract(ctx context.Context, contractID uuid.UUID) ([]model.DeliverySlot, error) {
	var rows []slotRow
	if err := conn(ctx, r.db).Raw(`
		SELECT `+slotColumns+`
		FROM delivery_slots
		WHERE contract_id = ?
		ORDER BY delivery_date ASC
	`, contractID).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	slots := make([]model.DeliverySlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, row.toModel())
	}
	return slots, nil
}

func (r *CalendarRepository) UpdateTime(ctx context.Context, id uuid.UUID, version int, newTime model.TimeOfDay) (bool, error) {
	res := conn(ctx, r.db).Exec(`
		UPDATE delivery_slots
		SET preferred_time = ?, version = version + 1, updated_at = NOW()
		WHERE id = ? AND version = ?
	`, newTime, id, version)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}
