package ledger

import "dispatch/internal/entities"

func ToDomain(e *EarningDB) *entities.Earning {
	if e == nil {
		return nil
	}
	return &entities.Earning{
		ID:        e.ID,
		PartnerID: e.PartnerID,
		OrderID:   e.OrderID,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

func FromDomainModify(e *entities.Earning) *EarningModifyDB {
	if e == nil {
		return nil
	}
	return &EarningModifyDB{
		ID:        &e.ID,
		PartnerID: &e.PartnerID,
		OrderID:   &e.OrderID,
		Amount:    &e.Amount,
		CreatedAt: &e.CreatedAt,
	}
}
