package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitryhil/vineweb/internal/catalog/mirror"
	"github.com/dmitryhil/vineweb/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorDanger  = lipgloss.Color("#EF4444")
	colorBorder  = lipgloss.Color("#4B5563")

	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	inStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Padding(0, 1)
	outStyle    = lipgloss.NewStyle().Foreground(colorDanger).Padding(0, 1)
)

const stockColumn = 5

func renderProducts(view mirror.View, serverTotal int64) string {
	rows := make([][]string, 0, len(view.Products))
	for _, p := range view.Products {
		rows = append(rows, []string{
			p.ID.Hex(),
			p.Name,
			p.Category + "/" + p.Subcategory,
			formatPrice(p),
			strings.Join(p.Sizes, ","),
			stockLabel(p),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("ID", "NAME", "CATEGORY", "PRICE", "SIZES", "STOCK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == stockColumn && row >= 0 && row < len(view.Products) {
				if view.Products[row].InStock {
					return inStyle
				}
				return outStyle
			}
			return cellStyle
		})

	footer := mutedStyle.Render(fmt.Sprintf(
		"page %d/%d, %d per page, %d matched locally, %d on server",
		view.Page, max(view.TotalPages, 1), view.PerPage, view.Matched, serverTotal,
	))

	return t.String() + "\n" + footer
}

func renderProduct(p domain.Product) string {
	lines := []string{
		titleStyle.Render(p.Name),
		mutedStyle.Render(p.ID.Hex()),
		"",
		p.Description,
		"",
		"Category:  " + p.Category + "/" + p.Subcategory,
		"Price:     " + formatPrice(p),
		"Sizes:     " + strings.Join(p.Sizes, ", "),
		"Stock:     " + stockLabel(p),
	}

	if p.Gender != nil {
		lines = append(lines, "Gender:    "+*p.Gender)
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "Tags:      "+strings.Join(p.Tags, ", "))
	}
	if len(p.Images) > 0 {
		lines = append(lines, "Images:    "+strings.Join(p.Images, ", "))
	}

	return strings.Join(lines, "\n")
}

func formatPrice(p domain.Product) string {
	price := strconv.FormatInt(p.Price, 10)
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		price += " (was " + strconv.FormatInt(*p.OriginalPrice, 10) + ")"
	}
	if p.Discount > 0 {
		price += fmt.Sprintf(" -%d%%", p.Discount)
	}
	return price
}

func stockLabel(p domain.Product) string {
	if !p.InStock {
		return "out"
	}
	return strconv.FormatInt(p.StockQuantity, 10)
}
