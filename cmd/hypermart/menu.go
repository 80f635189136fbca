package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"hypermart/core"
	"hypermart/core/types"
	"hypermart/loyalty"
)

// session drives the interactive menus. All mutations go through the core
// store and are persisted immediately afterwards; a failed write is reported
// and the session continues with the in-memory state as the authority.
type session struct {
	store  *core.Store
	logger *slog.Logger
	in     io.Reader
	out    io.Writer

	reader *bufio.Reader
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// readLine returns the next input line. ok is false on EOF, which ends the
// session cleanly.
func (s *session) readLine(prompt string) (string, bool) {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.in)
	}
	s.printf("%s", prompt)
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// readFloat keeps prompting until the user enters a valid number.
func (s *session) readFloat(prompt string) (float64, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			s.printf("An incorrect value has been entered. Try again.\n")
			continue
		}
		return v, true
	}
}

func (s *session) readInt(prompt string) (int64, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			s.printf("An incorrect value has been entered. Try again.\n")
			continue
		}
		return v, true
	}
}

func (s *session) mainMenu() {
	for {
		s.printf("-------------Hypermart------------\n")
		s.printf("1. Sign up\n2. Sign in\n3. Exit\n")
		choice, ok := s.readLine("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.signUp()
		case "2":
			s.signIn()
		case "3":
			return
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *session) signUp() {
	name, ok := s.readLine("Enter your full name: ")
	if !ok {
		return
	}
	balance, ok := s.readFloat("Enter the initial amount of money: ")
	if !ok {
		return
	}
	acct, err := s.store.SignUp(name, balance)
	if err != nil {
		s.printf("Sign up failed: %v\n", err)
		return
	}
	s.printf("You have successfully signed up! Your user ID is %d\n", acct.ID)
	s.persist()
}

func (s *session) signIn() {
	id, ok := s.readInt("Enter your user ID: ")
	if !ok {
		return
	}
	acct, err := s.store.Get(id)
	if err != nil {
		s.printf("User not found.\n")
		return
	}
	s.printf("Welcome back, %s!\n", acct.FullName)
	s.userMenu(acct.ID)
}

func (s *session) userMenu(id int64) {
	for {
		s.printf("1. View products\n2. Purchase product\n3. Top up your account\n4. View my account\n5. Back\n")
		choice, ok := s.readLine("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.viewProducts()
		case "2":
			s.purchase(id)
		case "3":
			s.topUp(id)
		case "4":
			s.viewAccount(id)
		case "5":
			return
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *session) viewProducts() {
	for _, p := range s.store.ListProducts() {
		s.printf("%s - %s (%s)\n", p.Company, p.Title, p.Category)
		for i, price := range p.Prices {
			s.printf("  option %d: %.2f\n", i, price)
		}
		s.printf("  max discount: %.0f%%\n", p.MaxDiscount*100)
	}
}

func (s *session) viewAccount(id int64) {
	acct, err := s.store.Get(id)
	if err != nil {
		s.printf("User not found.\n")
		return
	}
	s.printf("User: %s\nBalance: %.2f\n", acct.FullName, acct.Balance)
	tier := loyalty.PolicyFor(acct.Tier).TierDiscount(acct.CumulativeSpend)
	s.printf("Current discount: %.1f%%\n", tier*100)
	if len(acct.Purchases) == 0 {
		s.printf("No products purchased.\n")
		return
	}
	s.printf("Purchased products:\n")
	for _, p := range acct.Purchases {
		s.printf("  %s - %s: %.2f\n", p.Company, p.Title, p.PricePaid)
	}
}

func (s *session) purchase(id int64) {
	title, ok := s.readLine("Enter the title of the product you want to purchase: ")
	if !ok {
		return
	}
	product, err := s.store.FindProduct(title)
	if err != nil {
		s.printf("Product not found.\n")
		return
	}
	variant := int64(0)
	if len(product.Prices) > 1 {
		variant, ok = s.readInt(fmt.Sprintf("Choose a price option [0-%d]: ", len(product.Prices)-1))
		if !ok {
			return
		}
	}
	receipt, err := s.store.Purchase(id, title, int(variant))
	switch {
	case errors.Is(err, loyalty.ErrInsufficientFunds):
		s.printf("Insufficient funds.\n")
		return
	case errors.Is(err, loyalty.ErrPriceIndexOutOfRange):
		s.printf("Invalid price option.\n")
		return
	case err != nil:
		s.printf("Purchase failed: %v\n", err)
		return
	}
	s.printReceipt(receipt)
	s.persist()
}

func (s *session) printReceipt(r types.Receipt) {
	s.printf("Purchase successful!\n")
	if r.EffectiveDiscount > 0 {
		s.printf("List price %.2f, discount %.1f%%, you paid %.2f\n",
			r.ListPrice, r.EffectiveDiscount*100, r.FinalPrice)
	} else {
		s.printf("You paid %.2f\n", r.FinalPrice)
	}
	s.printf("Remaining balance: %.2f\n", r.Balance)
}

func (s *session) topUp(id int64) {
	amount, ok := s.readFloat("Enter the amount you wish to add to the balance: ")
	if !ok {
		return
	}
	acct, err := s.store.TopUp(id, amount)
	if err != nil {
		s.printf("Top up failed: %v\n", err)
		return
	}
	s.printf("Your balance has been successfully topped up. Current balance: %.2f\n", acct.Balance)
	s.persist()
}

// persist writes the account set after a mutation. Failures do not end the
// session; memory remains authoritative and a later save may still succeed.
func (s *session) persist() {
	if err := s.store.Persist(); err != nil {
		s.logger.Error("failed to persist account store", "error", err)
		s.printf("Warning: could not save account data: %v\n", err)
	}
}
