package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/99minutos/backoffice/internal/client/console"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const defaultActivityLimit = 20

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the back office overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				d, err := c.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				return printDashboard(cmd.OutOrStdout(), d)
			})
		},
	}
}

func newActivityCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List recent changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				events, err := c.RecentActivity(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return printActivity(cmd.OutOrStdout(), events)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultActivityLimit, "maximum number of events")
	return cmd
}

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse and edit the catalog",
	}
	cmd.AddCommand(
		newProductsListCommand(a),
		newProductsGetCommand(a),
		newProductsCreateCommand(a),
		newProductsUpdateCommand(a),
		newProductsDeleteCommand(a),
		newProductsCategoriesCommand(a),
	)
	return cmd
}

func newProductsListCommand(a *app) *cobra.Command {
	f := console.ProductFilter{Category: console.All, Status: console.All}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				products, err := c.ListProducts(cmd.Context(), f)
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), products)
			})
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match name or description")
	cmd.Flags().StringVar(&f.Category, "category", console.All, "category filter")
	cmd.Flags().StringVar(&f.Status, "status", console.All, "in-stock, low-stock or out-of-stock")
	return cmd
}

func newProductsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				p, err := c.Product(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printProduct(cmd.OutOrStdout(), p)
			})
		},
	}
}

func productFlags(fs *pflag.FlagSet, in *ports.ProductInput) {
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&in.Description, "description", "", "product description")
	fs.Float64Var(&in.Price, "price", 0, "unit price")
	fs.StringVar(&in.Category, "category", "", "category")
	fs.IntVar(&in.Stock, "stock", 0, "units on hand")
	fs.StringVar((*string)(&in.Status), "status", string(domain.ProductInStock), "in-stock, low-stock or out-of-stock")
}

func newProductsCreateCommand(a *app) *cobra.Command {
	var in ports.ProductInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				p, err := c.CreateProduct(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printProduct(cmd.OutOrStdout(), p)
			})
		},
	}
	productFlags(cmd.Flags(), &in)
	return cmd
}

// The edit form starts from the stored product; only flags given on the
// command line replace its values.
func newProductsUpdateCommand(a *app) *cobra.Command {
	var in ports.ProductInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				cur, err := c.Product(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				form := ports.ProductInput{
					Name:        cur.Name,
					Description: cur.Description,
					Price:       cur.Price,
					Category:    cur.Category,
					Stock:       cur.Stock,
					Status:      cur.Status,
				}
				fs := cmd.Flags()
				if fs.Changed("name") {
					form.Name = in.Name
				}
				if fs.Changed("description") {
					form.Description = in.Description
				}
				if fs.Changed("price") {
					form.Price = in.Price
				}
				if fs.Changed("category") {
					form.Category = in.Category
				}
				if fs.Changed("stock") {
					form.Stock = in.Stock
				}
				if fs.Changed("status") {
					form.Status = in.Status
				}

				p, err := c.UpdateProduct(cmd.Context(), args[0], form)
				if err != nil {
					return err
				}
				return printProduct(cmd.OutOrStdout(), p)
			})
		},
	}
	productFlags(cmd.Flags(), &in)
	return cmd
}

func newProductsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				return c.DeleteProduct(cmd.Context(), args[0])
			})
		},
	}
}

func newProductsCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				products, err := c.ListProducts(cmd.Context(), console.ProductFilter{Category: console.All, Status: console.All})
				if err != nil {
					return err
				}
				for _, name := range console.Categories(products) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func newOrdersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Browse orders and move them between statuses",
	}
	cmd.AddCommand(newOrdersListCommand(a), newOrdersGetCommand(a), newOrdersStatusCommand(a))
	return cmd
}

func newOrdersListCommand(a *app) *cobra.Command {
	f := console.OrderFilter{Status: console.All}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				orders, err := c.ListOrders(cmd.Context(), f)
				if err != nil {
					return err
				}
				return printOrders(cmd.OutOrStdout(), orders)
			})
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match order id, customer name or email")
	cmd.Flags().StringVar(&f.Status, "status", console.All, "order status filter")
	return cmd
}

func newOrdersGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				o, err := c.Order(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printOrder(cmd.OutOrStdout(), o)
			})
		},
	}
}

func newOrdersStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to pending, processing, shipped, delivered or cancelled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				if _, err := c.Order(cmd.Context(), args[0]); err != nil {
					return err
				}
				o, err := c.ChangeOrderStatus(cmd.Context(), args[0], domain.OrderStatus(args[1]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", o.ID, o.Status.Label())
				return nil
			})
		},
	}
}
