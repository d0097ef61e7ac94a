package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"pardelta-dashboard/internal/directory"
)

type StoreResponse struct {
	PCNumber    string `json:"pc_number"`
	StoreName   string `json:"store_name"`
	Address     string `json:"address"`
	Company     string `json:"company"`
	BankAccount string `json:"bank_account"`
}

// GetStores serves the fixed roster. The account reference goes out masked;
// the raw value never leaves the process.
func GetStores(log *slog.Logger, stores []directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			out = append(out, StoreResponse{
				PCNumber:    s.PCNumber,
				StoreName:   s.StoreName,
				Address:     s.Address,
				Company:     s.Company,
				BankAccount: directory.Mask(s.BankAccountLast4),
			})
		}

		render.JSON(w, r, out)
	}
}
