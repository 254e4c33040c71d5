package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/ledger"
	"github.com/mmynk/storefront/internal/models"
	"github.com/mmynk/storefront/internal/session"
	pb "github.com/mmynk/storefront/pkg/shopapi"
)

func toProtoProducts(products []models.Product) []pb.Product {
	out := make([]pb.Product, len(products))
	for i, p := range products {
		out[i] = pb.Product{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    ledger.Display(p.Price),
		}
	}
	return out
}

func toProtoCart(cart models.Cart) pb.Cart {
	lines := make([]pb.CartLine, len(cart))
	for i, line := range cart {
		lines[i] = pb.CartLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     ledger.Display(line.Price),
			Quantity:  line.Quantity,
			LineTotal: ledger.Display(ledger.LineTotal(line)),
		}
	}
	return pb.Cart{
		Lines:     lines,
		ItemCount: ledger.Count(cart),
		Total:     ledger.Display(ledger.Total(cart)),
	}
}

func toProtoState(cat *catalog.Catalog, state session.State, canUndo bool) pb.SessionState {
	return pb.SessionState{
		Selection:  state.Selection,
		Categories: cat.Categories(),
		Products:   toProtoProducts(state.Visible),
		Cart:       toProtoCart(state.Cart),
		CanUndo:    canUndo,
	}
}

// actionError maps a failed session action to its RPC error.
func actionError(err error) *connect.Error {
	switch {
	case errors.Is(err, session.ErrUnknownCategory):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, session.ErrUnknownProduct), errors.Is(err, ledger.ErrLineNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, session.ErrNothingToUndo):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
