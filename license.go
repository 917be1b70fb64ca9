package pdfgenie

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LicenseTermDays is how long an activated key stays valid.
const LicenseTermDays = 90

// dateLayout is the textual on-disk format of the expiry date.
const dateLayout = "2006-01-02"

// Status is the result of a license validity check.
type Status int

const (
	// StatusAbsent means no key was ever stored. Normal first-run state.
	StatusAbsent Status = iota
	// StatusValid means a key is stored and not past its expiry date.
	StatusValid
	// StatusExpired means the stored key is past its expiry date.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// LicenseRecord is the durable license state: a credential and its expiry.
// A zero Expiry means no expiry was recorded; such a key never expires.
type LicenseRecord struct {
	Key    string
	Expiry time.Time
}

// LicenseStore abstracts durable storage for the license record.
type LicenseStore interface {
	// Load reads the stored record. ok is false when no key was ever stored.
	Load() (rec LicenseRecord, ok bool, err error)
	// Save overwrites the stored record.
	Save(rec LicenseRecord) error
}

// --- Gate ---

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the gate's time source. Used in tests.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// Gate persists and validates the license key that gates all other
// functionality. Once a key checks out as valid (or is freshly activated),
// Key exposes it as the ambient credential for the LLM providers.
type Gate struct {
	store LicenseStore
	now   func() time.Time
	key   string
}

// NewGate creates a Gate over the given store.
func NewGate(store LicenseStore, opts ...GateOption) *Gate {
	g := &Gate{store: store, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Activate stores key with an expiry LicenseTermDays from now and marks the
// gate valid. Key contents are not validated beyond being non-empty.
// Activating over an expired record overwrites it; there is no separate
// renewal flow.
func (g *Gate) Activate(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	rec := LicenseRecord{
		Key:    key,
		Expiry: g.now().AddDate(0, 0, LicenseTermDays),
	}
	if err := g.store.Save(rec); err != nil {
		return fmt.Errorf("save license: %w", err)
	}
	g.key = key
	return nil
}

// Check reads durable storage and reports the license status. Validity is
// judged at date granularity: a key is valid through the whole of its
// expiry date. On StatusValid the key becomes available via Key. Storage
// read failures are fatal for the gate and returned as errors.
func (g *Gate) Check() (Status, error) {
	rec, ok, err := g.store.Load()
	if err != nil {
		return StatusAbsent, fmt.Errorf("load license: %w", err)
	}
	if !ok {
		return StatusAbsent, nil
	}
	if !rec.Expiry.IsZero() && dateOf(g.now()).After(dateOf(rec.Expiry)) {
		return StatusExpired, nil
	}
	g.key = rec.Key
	return StatusValid, nil
}

// Key returns the validated license key, or "" before a successful
// Activate or valid Check.
func (g *Gate) Key() string { return g.key }

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// --- FileLicenseStore ---

const (
	keyFileName    = "api_key.txt"
	expiryFileName = "key_expiration.txt"
)

// FileLicenseStore keeps the license record as two flat files in a
// directory: the credential string and a textual YYYY-MM-DD expiry date.
type FileLicenseStore struct {
	dir string
}

var _ LicenseStore = (*FileLicenseStore)(nil)

// NewFileLicenseStore creates a store rooted at dir. The directory is
// created on first Save.
func NewFileLicenseStore(dir string) *FileLicenseStore {
	return &FileLicenseStore{dir: dir}
}

// Load reads the key and expiry files. A missing key file means no key was
// ever stored. A missing or malformed expiry file yields a record with
// zero Expiry.
func (s *FileLicenseStore) Load() (LicenseRecord, bool, error) {
	keyBytes, err := os.ReadFile(filepath.Join(s.dir, keyFileName))
	if os.IsNotExist(err) {
		return LicenseRecord{}, false, nil
	}
	if err != nil {
		return LicenseRecord{}, false, err
	}
	rec := LicenseRecord{Key: strings.TrimSpace(string(keyBytes))}

	expBytes, err := os.ReadFile(filepath.Join(s.dir, expiryFileName))
	if err == nil {
		if exp, perr := time.Parse(dateLayout, strings.TrimSpace(string(expBytes))); perr == nil {
			rec.Expiry = exp
		}
	} else if !os.IsNotExist(err) {
		return LicenseRecord{}, false, err
	}
	return rec, true, nil
}

// Save writes both files, overwriting any previous record.
func (s *FileLicenseStore) Save(rec LicenseRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, keyFileName), []byte(rec.Key), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, expiryFileName), []byte(rec.Expiry.Format(dateLayout)), 0o600)
}
