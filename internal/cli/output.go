package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/99minutos/backoffice/internal/client/console"
	"github.com/99minutos/backoffice/internal/core/domain"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

func date(t time.Time) string { return t.Format("2006-01-02") }

func printProducts(out io.Writer, products []domain.Product) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, money(p.Price), p.Stock, p.Status)
	}
	return w.Flush()
}

func printProduct(out io.Writer, p domain.Product) error {
	w := newTable(out)
	fmt.Fprintf(w, "ID\t%s\n", p.ID)
	fmt.Fprintf(w, "Name\t%s\n", p.Name)
	fmt.Fprintf(w, "Description\t%s\n", p.Description)
	fmt.Fprintf(w, "Category\t%s\n", p.Category)
	fmt.Fprintf(w, "Price\t%s\n", money(p.Price))
	fmt.Fprintf(w, "Stock\t%d\n", p.Stock)
	fmt.Fprintf(w, "Status\t%s\n", p.Status)
	fmt.Fprintf(w, "Created\t%s\n", date(p.CreatedAt))
	return w.Flush()
}

func printUsers(out io.Writer, users []domain.User) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status, date(u.CreatedAt))
	}
	return w.Flush()
}

func printUser(out io.Writer, u domain.User) error {
	w := newTable(out)
	fmt.Fprintf(w, "ID\t%s\n", u.ID)
	fmt.Fprintf(w, "Name\t%s\n", u.Name)
	fmt.Fprintf(w, "Email\t%s\n", u.Email)
	fmt.Fprintf(w, "Role\t%s\n", u.Role)
	fmt.Fprintf(w, "Status\t%s\n", u.Status)
	fmt.Fprintf(w, "Created\t%s\n", date(u.CreatedAt))
	return w.Flush()
}

func printOrders(out io.Writer, orders []domain.Order) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tCUSTOMER\tTOTAL\tSTATUS\tPAYMENT\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.CustomerName, money(o.Total), o.Status.Label(), o.PaymentStatus, date(o.CreatedAt))
	}
	return w.Flush()
}

func printOrder(out io.Writer, o domain.Order) error {
	w := newTable(out)
	fmt.Fprintf(w, "ID\t%s\n", o.ID)
	fmt.Fprintf(w, "Customer\t%s <%s>\n", o.CustomerName, o.CustomerEmail)
	fmt.Fprintf(w, "Ship to\t%s\n", o.ShippingAddress)
	fmt.Fprintf(w, "Status\t%s\n", o.Status.Label())
	fmt.Fprintf(w, "Payment\t%s\n", o.PaymentStatus)
	fmt.Fprintf(w, "Updated\t%s\n", date(o.UpdatedAt))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range o.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.ProductName, it.Quantity, money(it.Price), money(it.Subtotal))
	}
	fmt.Fprintf(w, "\t\t\tTotal\t%s\n", money(o.Total))
	return w.Flush()
}

func printActivity(out io.Writer, events []domain.ActivityEvent) error {
	w := newTable(out)
	fmt.Fprintln(w, "WHEN\tENTITY\tACTION\tSUMMARY")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Entity, e.EntityID, e.Action, e.Summary)
	}
	return w.Flush()
}

func printDashboard(out io.Writer, d console.Dashboard) error {
	w := newTable(out)
	fmt.Fprintf(w, "Inventory value\t%s\n", money(d.Revenue))
	fmt.Fprintf(w, "Products\t%d\n", d.Products)
	fmt.Fprintf(w, "Needs attention\t%d\n", d.NeedsAttention)
	if d.ShowUsers {
		fmt.Fprintf(w, "Users\t%d\n", d.Users)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(d.Activity) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	return printActivity(out, d.Activity)
}
