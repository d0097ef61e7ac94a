package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store is immutable reference data: loaded once at startup, never re-read
// mid-computation. PCNumber is the canonical sort key everywhere.
type Store struct {
	PCNumber         string `yaml:"pc_number" json:"pc_number"`
	StoreName        string `yaml:"store_name" json:"store_name"`
	Address          string `yaml:"address" json:"address"`
	Company          string `yaml:"company" json:"company"`
	BankAccountLast4 string `yaml:"bank_account_last4" json:"-"`
}

type roster struct {
	Stores []Store `yaml:"stores"`
}

func Load(path string) ([]Store, error) {
	const op = "directory.Load"

	var r roster
	if err := cleanenv.ReadConfig(path, &r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(r.Stores) == 0 {
		return nil, fmt.Errorf("%s: store roster %s is empty", op, path)
	}

	seen := make(map[string]bool, len(r.Stores))
	for _, s := range r.Stores {
		if s.PCNumber == "" {
			return nil, fmt.Errorf("%s: store %q has no pc_number", op, s.StoreName)
		}
		if seen[s.PCNumber] {
			return nil, fmt.Errorf("%s: duplicate pc_number %s", op, s.PCNumber)
		}
		seen[s.PCNumber] = true
	}

	sort.Slice(r.Stores, func(i, j int) bool {
		return r.Stores[i].PCNumber < r.Stores[j].PCNumber
	})

	return r.Stores, nil
}

// Mask hides all but the first two characters of a credential or account
// reference before it is surfaced anywhere user-visible.
func Mask(value string) string {
	const keep = 2
	if value == "" {
		return ""
	}
	if len(value) <= keep {
		return strings.Repeat("*", len(value))
	}
	return value[:keep] + strings.Repeat("*", len(value)-keep)
}
