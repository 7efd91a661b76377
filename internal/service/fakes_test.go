package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/repository"
)

// memDB backs the fake stores. The fake transactor snapshots it and restores
// the snapshot when the transaction body fails.
type memDB struct {
	services  map[uuid.UUID]model.ServiceDefinition
	contracts map[uuid.UUID]model.Contract
	slots     map[uuid.UUID]model.DeliverySlot

	failSaveBatch   error
	failCreate      error
	raceOnUpdate    bool
	saveBatchCalls  int
	updateTimeCalls int
}

func newMemDB() *memDB {
	return &memDB{
		services:  map[uuid.UUID]model.ServiceDefinition{},
		contracts: map[uuid.UUID]model.Contract{},
		slots:     map[uuid.UUID]model.DeliverySlot{},
	}
}

func (db *memDB) snapshot() *memDB {
	cp := *db
	cp.services = make(map[uuid.UUID]model.ServiceDefinition, len(db.services))
	for k, v := range db.services {
		cp.services[k] = v
	}
	cp.contracts = make(map[uuid.UUID]model.Contract, len(db.contracts))
	for k, v := range db.contracts {
		cp.contracts[k] = v
	}
	cp.slots = make(map[uuid.UUID]model.DeliverySlot, len(db.slots))
	for k, v := range db.slots {
		cp.slots[k] = v
	}
	return &cp
}

type fakeTx struct{ db *memDB }

func (t fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := t.db.snapshot()
	if err := fn(ctx); err != nil {
		t.db.services = saved.services
		t.db.contracts = saved.contracts
		t.db.slots = saved.slots
		return err
	}
	return nil
}

type fakeCatalog struct{ db *memDB }

func (c fakeCatalog) Resolve(_ context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	def, ok := c.db.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &def, nil
}

func (c fakeCatalog) List(context.Context) ([]model.ServiceDefinition, error) {
	out := make([]model.ServiceDefinition, 0, len(c.db.services))
	for _, def := range c.db.services {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c fakeCatalog) Create(_ context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error) {
	c.db.services[def.ID] = def
	return &def, nil
}

type fakeContracts struct{ db *memDB }

func (s fakeContracts) Create(_ context.Context, contract model.Contract) (*model.Contract, error) {
	if s.db.failCreate != nil {
		return nil, s.db.failCreate
	}
	if _, ok := s.db.services[contract.ServiceID]; !ok {
		return nil, errors.Join(repository.ErrNotFound, errors.New("fk violation"))
	}
	s.db.contracts[contract.ID] = contract
	return &contract, nil
}

func (s fakeContracts) listing(c model.Contract) model.ContractListing {
	l := model.ContractListing{Contract: c}
	if def, ok := s.db.services[c.ServiceID]; ok {
		name := def.Name
		l.ServiceName = &name
	}
	return l
}

func (s fakeContracts) ByID(_ context.Context, id uuid.UUID) (*model.ContractListing, error) {
	c, ok := s.db.contracts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l := s.listing(c)
	return &l, nil
}

func (s fakeContracts) ByPatient(_ context.Context, patientID uuid.UUID) ([]model.ContractListing, error) {
	out := []model.ContractListing{}
	for _, c := range s.db.contracts {
		if c.PatientID == patientID {
			out = append(out, s.listing(c))
		}
	}
	return out, nil
}

func (s fakeContracts) All(context.Context) ([]model.ContractListing, error) {
	out := []model.ContractListing{}
	for _, c := range s.db.contracts {
		out = append(out, s.listing(c))
	}
	return out, nil
}

func (s fakeContracts) SetStatus(_ context.Context, id uuid.UUID, status model.ContractStatus) error {
	c, ok := s.db.contracts[id]
	if !ok {
		return nil
	}
	c.Status = status
	s.db.contracts[id] = c
	return nil
}

func (s fakeContracts) ExistsActiveFor(_ context.Context, patientID uuid.UUID) (bool, error) {
	for _, c := range s.db.contracts {
		if c.PatientID == patientID && c.Status == model.ContractStatusActive {
			return true, nil
		}
	}
	return false, nil
}

type fakeSlots struct{ db *memDB }

func (s fakeSlots) SaveBatch(_ context.Context, slots []model.DeliverySlot) error {
	s.db.saveBatchCalls++
	if s.db.failSaveBatch != nil {
		return s.db.failSaveBatch
	}
	for _, slot := range slots {
		s.db.slots[slot.ID] = slot
	}
	return nil
}

func (s fakeSlots) ByID(_ context.Context, id uuid.UUID) (*model.DeliverySlot, error) {
	slot, ok := s.db.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &slot, nil
}

func (s fakeSlots) ByContract(_ context.Context, contractID uuid.UUID) ([]model.DeliverySlot, error) {
	out := []model.DeliverySlot{}
	for _, slot := range s.db.slots {
		if slot.ContractID == contractID {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s fakeSlots) UpdateTime(_ context.Context, id uuid.UUID, version int, newTime model.TimeOfDay) (bool, error) {
	s.db.updateTimeCalls++
	slot, ok := s.db.slots[id]
	if !ok || slot.Version != version || s.db.raceOnUpdate {
		return false, nil
	}
	slot.PreferredTime = newTime
	slot.Version++
	s.db.slots[id] = slot
	return true, nil
}
