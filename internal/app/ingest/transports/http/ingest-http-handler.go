package ingest_http_handler

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/domain/dtos"
)

type IngestHttpHandler struct {
	service  app.CatalogIngestService
	validate *validator.Validate
	log      *slog.Logger
}

func New(service app.CatalogIngestService, log *slog.Logger) *IngestHttpHandler {
	return &IngestHttpHandler{service, validator.New(), log}
}

func (this *IngestHttpHandler) Register(mainApp *fiber.App) {
	var grp = mainApp.Group("/catalogs")

	grp.Post("/upload", this.upload)
}

func (this *IngestHttpHandler) upload(fctx fiber.Ctx) error {
	var req dtos.CatalogUploadRequest
	if err := fctx.Bind().Form(&req); err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Status: "error", Error: "invalid form data"})
	}
	if err := this.validate.Struct(&req); err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Status: "error", Error: err.Error()})
	}

	fh, err := fctx.FormFile("file")
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Status: "error", Error: "missing file parameter"})
	}

	tmp, err := os.CreateTemp("", "catalog-upload-*.xlsx")
	if err != nil {
		return fctx.Status(fiber.StatusInternalServerError).JSON(dtos.ErrorResponse{Status: "error", Error: "cannot buffer upload"})
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := fctx.SaveFile(fh, tmp.Name()); err != nil {
		return fctx.Status(fiber.StatusInternalServerError).JSON(dtos.ErrorResponse{Status: "error", Error: "cannot store upload"})
	}

	this.log.Info("catalog upload received", "file", fh.Filename, "supplier", req.SupplierName, "size", fh.Size)

	res, err := this.service.ImportWorkbook(fctx.Context(), tmp.Name())
	if err != nil {
		return fctx.Status(fiber.StatusInternalServerError).JSON(dtos.ErrorResponse{Status: "error", Error: err.Error()})
	}

	return fctx.JSON(dtos.CatalogUploadResponse{Status: "ok", Count: res.Count, Sheets: res.Sheets})
}
