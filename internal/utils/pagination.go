package utils

import "github.com/gofiber/fiber/v2"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Page describes one window of a listing.
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// PageFromQuery reads ?page= and ?limit=. Values below one fall back to
// the defaults; the limit is capped at maxPageLimit.
func PageFromQuery(c *fiber.Ctx) Page {
	p := Page{Number: c.QueryInt("page", 1), Limit: c.QueryInt("limit", defaultPageLimit)}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	p.Limit = min(p.Limit, maxPageLimit)
	return p
}

// Bounds records total on p and returns the slice indices of the page.
func (p *Page) Bounds(total int) (start, end int) {
	p.Total = total
	p.Pages = (total + p.Limit - 1) / p.Limit
	start = min((p.Number-1)*p.Limit, total)
	end = min(start+p.Limit, total)
	return start, end
}

// Paged is the JSON body of a paginated listing.
type Paged[T any] struct {
	Data []T  `json:"data"`
	Page Page `json:"pagination"`
}
