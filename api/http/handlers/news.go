package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/news"
)

type NewsHandler struct {
	news news.UseCase
}

func NewNewsHandler(uc news.UseCase) *NewsHandler {
	return &NewsHandler{news: uc}
}

// Search lists news articles of a category.
// @Summary News
// @Tags    news
// @Produce json
// @Param   q        query string false "search query"
// @Param   category query string false "business, entertainment, general, health, science, sports or technology"
// @Param   page     query int    false "1-based page"
// @Success 200 {object} news.Page
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /news [get]
func (h *NewsHandler) Search(c *fiber.Ctx) error {
	p, err := h.news.Search(c.UserContext(), c.Query("q"), c.Query("category"), parsePage(c))
	if err != nil {
		return fail(c, err, "failed to load news")
	}
	return presenter.JSON(c, http.StatusOK, p)
}
