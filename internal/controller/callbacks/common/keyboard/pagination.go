package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// AlarmsPerPage напоминаний на одной странице списка
const AlarmsPerPage = 5

// TotalPages количество страниц для total элементов
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// PageBounds границы среза для страницы, page приводится к допустимому диапазону
func PageBounds(total, perPage, page int) (start, end, clamped int) {
	pages := TotalPages(total, perPage)
	clamped = max(0, min(page, pages-1))
	start = min(clamped*perPage, total)
	end = min(start+perPage, total)
	return start, end, clamped
}

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "alarms_page:")
// currentPage - текущая страница (0-based)
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	return b.Row(PaginationButtons(prefix, currentPage, totalPages)...)
}
