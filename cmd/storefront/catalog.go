package main

import (
	"github.com/spf13/cobra"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/pagination"
)

func (c *cli) productsCmd() *cobra.Command {
	var (
		q        domain.Query
		category string
		sortKey  string
		page     pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if category != "" && category != "all" {
				if !domain.IsValidCategory(category) {
					return apperrors.InvalidInputf("unknown category %q", category)
				}
				q.Category = domain.Category(category)
			}
			q.SortKey = domain.ParseSortKey(sortKey)
			if page.Page < 1 {
				page.Page = 1
			}
			if page.PerPage < 1 || page.PerPage > pagination.MaxPerPage {
				page.PerPage = pagination.DefaultPerPage
			}

			result := c.catalog.Search(cmd.Context(), q, page)
			if c.jsonOutput {
				return writeJSON(c.out, result)
			}
			return printProducts(c.out, result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.SearchText, "search", "", "case-insensitive text in name, description or tags")
	f.StringVar(&category, "category", "", "men, women or kids")
	f.StringVar(&q.Subcategory, "subcategory", "", "subcategory within the category, or all")
	f.StringVar(&q.PriceRange, "price", "", "price range: 0-1000, 1000-2500, 2500-5000, 5000+")
	f.StringVar(&sortKey, "sort", string(domain.SortFeatured), "featured, newest, price-low, price-high, rating, discount")
	f.IntVar(&page.Page, "page", 1, "page number")
	f.IntVar(&page.PerPage, "per-page", pagination.DefaultPerPage, "results per page")
	return cmd
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id|slug>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.catalog.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(c.out, p)
			}
			return printProduct(c.out, p, c.catalog.Slug(p.ID))
		},
	}
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their subcategories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats := c.catalog.Categories(cmd.Context())
			if c.jsonOutput {
				return writeJSON(c.out, cats)
			}
			return printCategories(c.out, cats)
		},
	}
}

func (c *cli) collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "Show the featured, new arrival and top rated shelves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			col := c.catalog.Collections(cmd.Context())
			if c.jsonOutput {
				return writeJSON(c.out, col)
			}
			return printCollections(c.out, col)
		},
	}
}
