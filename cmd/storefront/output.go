package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/engine"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	"github.com/mad-madhu-001/ecommerce/pkg/pagination"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(rupees int64) string {
	return fmt.Sprintf("₹%d", rupees)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printProductRows(tw *tabwriter.Writer, products []domain.Product) {
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		price := formatPrice(p.Price)
		if off := p.DiscountPercent(); off > 0 {
			price += fmt.Sprintf(" (-%d%%)", off)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s/%s\t%s\t%.1f\t%s\n", p.ID, p.Name, p.Category, p.Subcategory, price, p.Rating, stock)
	}
}

func printProducts(w io.Writer, res pagination.Result[domain.Product]) error {
	if len(res.Data) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tSTOCK")
	printProductRows(tw, res.Data)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d of %d, %d products\n", res.Page, res.TotalPages, res.TotalCount)
	return err
}

func printProduct(w io.Writer, p domain.Product, slug string) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Slug\t%s\n", slug)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Category\t%s / %s\n", p.Category, p.Subcategory)
	fmt.Fprintf(tw, "Price\t%s\n", formatPrice(p.Price))
	if p.OriginalPrice != nil {
		fmt.Fprintf(tw, "Original price\t%s (%d%% off)\n", formatPrice(*p.OriginalPrice), p.DiscountPercent())
	}
	fmt.Fprintf(tw, "Rating\t%.1f (%d reviews)\n", p.Rating, p.ReviewCount)
	fmt.Fprintf(tw, "Sizes\t%s\n", orNone(p.Sizes))
	fmt.Fprintf(tw, "Colors\t%s\n", orNone(p.Colors))
	fmt.Fprintf(tw, "In stock\t%t\n", p.InStock)
	if p.Description != "" {
		fmt.Fprintf(tw, "Description\t%s\n", p.Description)
	}
	return tw.Flush()
}

func printCategories(w io.Writer, cats []service.CategoryListing) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRODUCTS\tSUBCATEGORIES")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.ID, c.Name, c.ProductCount, strings.Join(c.Subcategories, ", "))
	}
	return tw.Flush()
}

func printCollections(w io.Writer, c engine.Collections) error {
	shelves := []struct {
		title    string
		products []domain.Product
	}{
		{"Featured", c.Featured},
		{"New arrivals", c.NewArrivals},
		{"Top rated", c.TopRated},
	}

	for i, s := range shelves {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", s.title, len(s.products))
		tw := newTable(w)
		printProductRows(tw, s.products)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func printNotifications(w io.Writer, notes []domain.Notification) {
	for _, n := range notes {
		marker := "*"
		if n.Variant == domain.VariantDestructive {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %s: %s\n", marker, n.Title, n.Description)
	}
}

func printCart(w io.Writer, cart domain.Cart) error {
	if cart.IsEmpty() {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCOLOR\tQTY\tSUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			item.Product.ID, item.Product.Name, item.SelectedSize, item.SelectedColor,
			item.Quantity, formatPrice(item.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := cart.Summarize()
	delivery := "FREE"
	if s.DeliveryCharge > 0 {
		delivery = formatPrice(s.DeliveryCharge)
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintf(tw, "Items\t%d\n", s.ItemCount)
	fmt.Fprintf(tw, "Subtotal\t%s\n", formatPrice(s.Subtotal))
	fmt.Fprintf(tw, "Delivery\t%s\n", delivery)
	fmt.Fprintf(tw, "Total\t%s\n", formatPrice(s.Total))
	if s.FreeDeliveryPending > 0 {
		fmt.Fprintf(tw, "\tAdd %s more for free delivery\n", formatPrice(s.FreeDeliveryPending))
	}
	return tw.Flush()
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
