package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hypermart/core/types"
	"hypermart/observability/metrics"
)

// FileStore persists accounts to a flat newline-delimited text file. Each
// record occupies a fixed five lines plus three lines per recorded purchase:
//
//	id
//	full name
//	balance
//	legacy discount
//	purchase count
//	  then per purchase: company, title, price paid
//
// Records concatenate with no separator; a reader must consume exactly the
// line count each record declares. The format is internal and versionless.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file is not
// touched until the first LoadAll or SaveAll.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string { return s.path }

// LoadAll reads every account record from the backing file. A missing file is
// not an error: an empty file is created and an empty set returned. Any
// malformed record aborts the whole load with ErrCorruptStore.
func (s *FileStore) LoadAll() ([]types.Account, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		create, cerr := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
		if cerr != nil {
			return nil, fmt.Errorf("storage: create %s: %w", s.path, cerr)
		}
		create.Close()
		return []types.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := &recordReader{scanner: bufio.NewScanner(f)}
	seen := make(map[int64]struct{})
	accounts := []types.Account{}
	for {
		acct, ok, err := r.readAccount()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, dup := seen[acct.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate account id %d at line %d", ErrCorruptStore, acct.ID, r.line)
		}
		seen[acct.ID] = struct{}{}
		accounts = append(accounts, acct)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	metrics.Loyalty().ObserveStoreLoad()
	return accounts, nil
}

// SaveAll writes the full account set as a new snapshot. The snapshot is
// written to a temporary file and atomically renamed over the target, so an
// interrupted write never leaves a truncated store behind.
func (s *FileStore) SaveAll(accounts []types.Account) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", tmp, err)
	}
	w := bufio.NewWriter(f)
	for i := range accounts {
		if err := writeAccount(w, &accounts[i]); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage: rename %s: %w", tmp, err)
	}
	metrics.Loyalty().ObserveStoreSave()
	return nil
}

func writeAccount(w *bufio.Writer, acct *types.Account) error {
	if strings.ContainsRune(acct.FullName, '\n') {
		return fmt.Errorf("storage: account %d: full name contains newline", acct.ID)
	}
	fmt.Fprintf(w, "%d\n", acct.ID)
	fmt.Fprintf(w, "%s\n", acct.FullName)
	fmt.Fprintf(w, "%s\n", formatAmount(acct.Balance))
	fmt.Fprintf(w, "%s\n", formatAmount(acct.LegacyDiscount))
	fmt.Fprintf(w, "%d\n", len(acct.Purchases))
	for _, p := range acct.Purchases {
		if strings.ContainsRune(p.Company, '\n') || strings.ContainsRune(p.Title, '\n') {
			return fmt.Errorf("storage: account %d: purchase field contains newline", acct.ID)
		}
		fmt.Fprintf(w, "%s\n", p.Company)
		fmt.Fprintf(w, "%s\n", p.Title)
		fmt.Fprintf(w, "%s\n", formatAmount(p.PricePaid))
	}
	return nil
}

// formatAmount renders a float so that parsing it back yields the identical
// bit pattern.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// recordReader walks the flat file line by line, tracking position for error
// reporting.
type recordReader struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the next line. ok is false at a clean end of input.
func (r *recordReader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

func (r *recordReader) corrupt(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at line %d", ErrCorruptStore, detail, r.line)
}

// readAccount parses one account record. ok is false when the input is
// exhausted before the record starts; a record truncated mid-way is corrupt.
func (r *recordReader) readAccount() (types.Account, bool, error) {
	idLine, ok := r.next()
	if !ok {
		return types.Account{}, false, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idLine), 10, 64)
	if err != nil || id <= 0 {
		return types.Account{}, false, r.corrupt("invalid account id %q", idLine)
	}

	name, ok := r.next()
	if !ok {
		return types.Account{}, false, r.corrupt("record truncated: missing full name")
	}
	if strings.TrimSpace(name) == "" {
		return types.Account{}, false, r.corrupt("empty full name")
	}

	balance, err := r.readAmount("balance")
	if err != nil {
		return types.Account{}, false, err
	}
	if balance < 0 {
		return types.Account{}, false, r.corrupt("negative balance %v", balance)
	}
	legacy, err := r.readAmount("legacy discount")
	if err != nil {
		return types.Account{}, false, err
	}

	countLine, ok := r.next()
	if !ok {
		return types.Account{}, false, r.corrupt("record truncated: missing purchase count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return types.Account{}, false, r.corrupt("invalid purchase count %q", countLine)
	}

	acct := types.Account{
		ID:             id,
		FullName:       name,
		Balance:        balance,
		LegacyDiscount: legacy,
		Tier:           types.TierRegular,
	}
	for i := 0; i < count; i++ {
		company, ok := r.next()
		if !ok {
			return types.Account{}, false, r.corrupt("record truncated: missing purchase company")
		}
		title, ok := r.next()
		if !ok {
			return types.Account{}, false, r.corrupt("record truncated: missing purchase title")
		}
		paid, err := r.readAmount("price paid")
		if err != nil {
			return types.Account{}, false, err
		}
		acct.Purchases = append(acct.Purchases, types.Purchase{
			Company:   company,
			Title:     title,
			PricePaid: paid,
		})
	}
	return acct, true, nil
}

func (r *recordReader) readAmount(field string) (float64, error) {
	line, ok := r.next()
	if !ok {
		return 0, r.corrupt("record truncated: missing %s", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, r.corrupt("invalid %s %q", field, line)
	}
	return v, nil
}
