package catalog_http_handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/domain/dtos"
)

type CatalogHttpHandler struct {
	service app.CatalogQueryService
	log     *slog.Logger
}

func New(service app.CatalogQueryService, log *slog.Logger) *CatalogHttpHandler {
	return &CatalogHttpHandler{service, log}
}

func (this *CatalogHttpHandler) Register(mainApp *fiber.App) {
	mainApp.Get("/lenses", this.search)
}

func (this *CatalogHttpHandler) search(fctx fiber.Ctx) error {
	pocketLimit, _ := strconv.ParseFloat(fctx.Query("pocketLimit", "0"), 64)
	q := app.LensQuery{
		Geometry:    fctx.Query("type", string(app.GeometryProgressif)),
		Brand:       fctx.Query("brand"),
		Design:      fctx.Query("design"),
		IndexMat:    fctx.Query("index"),
		Coating:     fctx.Query("coating"),
		Myopia:      fctx.Query("myopia") == "true",
		PocketLimit: pocketLimit,
	}

	this.log.Info("lens search", "type", q.Geometry, "brand", q.Brand, "design", q.Design)

	offers, err := this.service.Search(fctx.Context(), q)
	if err != nil {
		this.log.Error("lens search failed", "error", err)
		return fctx.Status(fiber.StatusInternalServerError).JSON(dtos.ErrorResponse{Status: "error", Error: "catalog query failed"})
	}
	return fctx.JSON(offers)
}
