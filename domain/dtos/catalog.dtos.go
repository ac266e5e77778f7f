package dtos

import "github.com/podium-optique/catalog/domain/app"

type CatalogUploadRequest struct {
	SupplierName string `form:"supplier_name" json:"supplier_name" validate:"omitempty,min=2"`
	SupplierId   uint64 `form:"supplier_id" json:"supplier_id" validate:"omitempty,gt=0"`
}

type CatalogUploadResponse struct {
	Status string             `json:"status"`
	Count  int                `json:"count"`
	Sheets []app.SheetSummary `json:"sheets"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
