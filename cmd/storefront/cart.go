package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/event"
	"github.com/mad-madhu-001/ecommerce/internal/repository"
	"github.com/mad-madhu-001/ecommerce/internal/repository/sqlite"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
)

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the local cart",
	}
	cmd.AddCommand(
		c.cartShowCmd(),
		c.cartAddCmd(),
		c.cartQuickAddCmd(),
		c.cartUpdateCmd(),
		c.cartRemoveCmd(),
		c.cartClearCmd(),
	)
	return cmd
}

func (c *cli) cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart and its order summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withCart(cmd.Context(), func(context.Context, *service.CartStore) error {
				return nil
			})
		},
	}
}

func (c *cli) cartAddCmd() *cobra.Command {
	var (
		size     string
		color    string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product in the chosen size and color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.catalog.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.withCart(cmd.Context(), func(ctx context.Context, store *service.CartStore) error {
				return store.AddSelection(ctx, p, size, color, quantity)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&size, "size", "", "selected size")
	f.StringVar(&color, "color", "", "selected color")
	f.IntVar(&quantity, "qty", 1, "number of units")
	return cmd
}

func (c *cli) cartQuickAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick-add <product-id>",
		Short: "Add one unit of a product's first size and color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.catalog.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.withCart(cmd.Context(), func(ctx context.Context, store *service.CartStore) error {
				return store.QuickAdd(ctx, p)
			})
		},
	}
}

func (c *cli) cartUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <product-id> <size> <color> <quantity>",
		Short: "Set the quantity of a cart line; zero or less removes it",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[3])
			if err != nil {
				return apperrors.InvalidInputf("quantity must be a whole number, got %q", args[3])
			}
			return c.withCart(cmd.Context(), func(ctx context.Context, store *service.CartStore) error {
				return store.UpdateQuantity(ctx, args[0], args[1], args[2], qty)
			})
		},
	}
}

func (c *cli) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id> <size> <color>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCart(cmd.Context(), func(ctx context.Context, store *service.CartStore) error {
				return store.RemoveFromCart(ctx, args[0], args[1], args[2])
			})
		},
	}
}

func (c *cli) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every line from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withCart(cmd.Context(), func(ctx context.Context, store *service.CartStore) error {
				return store.ClearCart(ctx)
			})
		},
	}
}

// cartKey returns the snapshot key of the configured session.
func (c *cli) cartKey() string {
	if c.cfg.Session == "" {
		return repository.CartKey
	}
	return repository.SessionCartKey(c.cfg.Session)
}

// withCart opens the SQLite cart, runs fn, prints the notifications it
// emitted and, on success, the resulting cart.
func (c *cli) withCart(ctx context.Context, fn func(context.Context, *service.CartStore) error) error {
	db, err := sqlite.Open(ctx, c.cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	rec := event.NewRecorder()
	store := service.NewCartStore(db, c.cartKey(), event.Multi{rec, event.NewLogSink(c.logger)}, c.logger)

	opErr := fn(ctx, store)
	if !c.jsonOutput {
		printNotifications(c.out, rec.Notifications())
	}
	if opErr != nil {
		return opErr
	}

	cart := store.Items(ctx)
	if c.jsonOutput {
		return writeJSON(c.out, cartView{
			Key:           store.Key(),
			Items:         cart.Items,
			Summary:       cart.Summarize(),
			Notifications: rec.Notifications(),
		})
	}
	return printCart(c.out, cart)
}

// cartView is the JSON form of the cart.
type cartView struct {
	Key           string                `json:"key"`
	Items         []domain.CartItem     `json:"items"`
	Summary       domain.OrderSummary   `json:"summary"`
	Notifications []domain.Notification `json:"notifications"`
}
