package loyalty

import (
	"hypermart/core/events"
	"hypermart/core/types"
	"hypermart/observability/metrics"
)

// Engine settles purchase transactions against customer accounts. The engine
// itself is stateless; all state lives on the account passed in.
type Engine struct {
	emitter events.Emitter
}

// NewEngine creates a purchase engine that discards events.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetEmitter wires an event emitter. Passing nil restores the discarding
// default.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(evt)
}

// Quote prices a purchase without performing it. The returned receipt carries
// the list price, the capped discount and the final price; Balance reports
// what the balance would be after the purchase and may be negative.
func (e *Engine) Quote(acct *types.Account, product types.Product, priceIndex int) (types.Receipt, error) {
	if priceIndex < 0 || priceIndex >= len(product.Prices) {
		return types.Receipt{}, ErrPriceIndexOutOfRange
	}
	listPrice := product.Prices[priceIndex]
	tier := PolicyFor(acct.Tier).TierDiscount(acct.CumulativeSpend)
	discount := EffectiveDiscount(tier, product.MaxDiscount)
	finalPrice := listPrice * (1 - discount)
	return types.Receipt{
		Company:           product.Company,
		Title:             product.Title,
		ListPrice:         listPrice,
		EffectiveDiscount: discount,
		FinalPrice:        finalPrice,
		Balance:           acct.Balance - finalPrice,
	}, nil
}

// Purchase settles a single purchase: it prices the product with the capped
// discount, debits the account and records the purchase snapshot.
//
// Failure paths leave the account untouched. On success the balance debit,
// the history append and the cumulative-spend accrual happen together; no
// intermediate state is ever observable. Tier progress accrues on the list
// price, not the discounted amount paid.
func (e *Engine) Purchase(acct *types.Account, product types.Product, priceIndex int) (types.Receipt, error) {
	receipt, err := e.Quote(acct, product, priceIndex)
	if err != nil {
		e.emit(events.PurchaseRejected{
			AccountID: acct.ID,
			Title:     product.Title,
			Reason:    events.ReasonPriceOutOfRange,
		})
		metrics.Loyalty().ObservePurchaseRejected(events.ReasonPriceOutOfRange)
		return types.Receipt{}, err
	}
	if acct.Balance < receipt.FinalPrice {
		e.emit(events.PurchaseRejected{
			AccountID: acct.ID,
			Title:     product.Title,
			Reason:    events.ReasonInsufficientFunds,
		})
		metrics.Loyalty().ObservePurchaseRejected(events.ReasonInsufficientFunds)
		return types.Receipt{}, ErrInsufficientFunds
	}

	acct.Balance -= receipt.FinalPrice
	acct.Purchases = append(acct.Purchases, types.Purchase{
		Company:   product.Company,
		Title:     product.Title,
		PricePaid: receipt.FinalPrice,
	})
	acct.CumulativeSpend += receipt.ListPrice
	receipt.Balance = acct.Balance

	e.emit(events.PurchaseCompleted{
		AccountID:         acct.ID,
		Company:           receipt.Company,
		Title:             receipt.Title,
		ListPrice:         receipt.ListPrice,
		EffectiveDiscount: receipt.EffectiveDiscount,
		PricePaid:         receipt.FinalPrice,
		Balance:           acct.Balance,
	})
	metrics.Loyalty().ObservePurchase(product.Category)
	return receipt, nil
}
