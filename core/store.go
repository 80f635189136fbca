// Package core owns the aggregate state of the loyalty program: the product
// catalogue and the set of customer accounts, together with every operation
// the outer collaborator layer is allowed to invoke. There are no package
// globals; the Store value is passed explicitly and internal pointers never
// escape its methods.
package core

import (
	"fmt"
	"strings"

	"hypermart/core/events"
	"hypermart/core/types"
	"hypermart/loyalty"
	"hypermart/observability/metrics"
	"hypermart/storage"
)

// Store aggregates the catalogue and the account set. It is not safe for
// concurrent use; the collaborator layer runs one session at a time.
type Store struct {
	catalog   []types.Product
	accounts  map[int64]*types.Account
	engine    *loyalty.Engine
	ids       IDSource
	persister storage.AccountStore
	emitter   events.Emitter
}

// NewStore builds a store over a validated catalogue and a persistence
// backend. The catalogue is cloned; later changes to the caller's slice do
// not leak in.
func NewStore(catalog []types.Product, persister storage.AccountStore) *Store {
	cloned := make([]types.Product, 0, len(catalog))
	for i := range catalog {
		cloned = append(cloned, catalog[i].Clone())
	}
	return &Store{
		catalog:   cloned,
		accounts:  make(map[int64]*types.Account),
		engine:    loyalty.NewEngine(),
		ids:       RandIDSource{},
		persister: persister,
		emitter:   events.NoopEmitter{},
	}
}

// SetIDSource replaces the account id generator. Nil restores the default.
func (s *Store) SetIDSource(ids IDSource) {
	if ids == nil {
		ids = RandIDSource{}
	}
	s.ids = ids
}

// SetEmitter wires an event emitter for account and purchase events. Nil
// restores the discarding default.
func (s *Store) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	s.emitter = emitter
	s.engine.SetEmitter(emitter)
}

// ListProducts returns a read-only view of the catalogue as deep copies.
func (s *Store) ListProducts() []types.Product {
	out := make([]types.Product, 0, len(s.catalog))
	for i := range s.catalog {
		out = append(out, s.catalog[i].Clone())
	}
	return out
}

// FindProduct looks a product up by its exact title.
func (s *Store) FindProduct(title string) (types.Product, error) {
	for i := range s.catalog {
		if s.catalog[i].Title == title {
			return s.catalog[i].Clone(), nil
		}
	}
	return types.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, title)
}

// SignUp creates an account with a fresh unique id and the supplied starting
// balance. New customers are regular tier: their discount grows with spend.
func (s *Store) SignUp(fullName string, initialBalance float64) (*types.Account, error) {
	if err := validateName(fullName); err != nil {
		return nil, err
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: initial balance %v", ErrInvalidAmount, initialBalance)
	}
	id := s.ids.NextID(func(id int64) bool {
		_, taken := s.accounts[id]
		return taken || id <= 0
	})
	acct := &types.Account{
		ID:       id,
		FullName: fullName,
		Balance:  initialBalance,
		Tier:     types.TierRegular,
	}
	s.accounts[id] = acct
	s.emitter.Emit(events.AccountCreated{AccountID: id, FullName: fullName, Balance: initialBalance})
	cp := acct.Clone()
	return &cp, nil
}

// Get returns a snapshot of the account with the given id.
func (s *Store) Get(id int64) (*types.Account, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	cp := acct.Clone()
	return &cp, nil
}

// TopUp credits the account balance. A zero amount is valid and is a no-op
// apart from the emitted event.
func (s *Store) TopUp(id int64, amount float64) (*types.Account, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: top-up %v", ErrInvalidAmount, amount)
	}
	acct, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	acct.Balance += amount
	s.emitter.Emit(events.AccountToppedUp{AccountID: id, Amount: amount, Balance: acct.Balance})
	metrics.Loyalty().ObserveTopUp()
	cp := acct.Clone()
	return &cp, nil
}

// Purchase settles a purchase of the titled product's priceIndex variant
// against the account. Failure paths leave the account untouched.
func (s *Store) Purchase(id int64, title string, priceIndex int) (types.Receipt, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return types.Receipt{}, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	product, err := s.FindProduct(title)
	if err != nil {
		return types.Receipt{}, err
	}
	return s.engine.Purchase(acct, product, priceIndex)
}

// Accounts returns snapshots of every account. Order is unspecified.
func (s *Store) Accounts() []types.Account {
	out := make([]types.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct.Clone())
	}
	return out
}

// Persist writes the full account set through the configured backend. The
// in-memory state stays authoritative whether or not the write succeeds.
func (s *Store) Persist() error {
	return s.persister.SaveAll(s.Accounts())
}

// Restore replaces the in-memory account set with the persisted one. On
// error, including a corrupt store, the in-memory state is left as it was;
// the caller decides whether that is fatal.
func (s *Store) Restore() error {
	loaded, err := s.persister.LoadAll()
	if err != nil {
		return err
	}
	accounts := make(map[int64]*types.Account, len(loaded))
	for i := range loaded {
		cp := loaded[i].Clone()
		accounts[cp.ID] = &cp
	}
	s.accounts = accounts
	return nil
}

func validateName(fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrInvalidName
	}
	return nil
}
