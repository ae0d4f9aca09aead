package dto

import (
	"github.com/dmitryhil/vineweb/internal/domain"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
)

type ProductListResponse struct {
	Products   []domain.Product  `json:"products"`
	Pagination pkgdto.Pagination `json:"pagination"`
}

type DeleteProductResponse struct {
	Message        string         `json:"message"`
	DeletedProduct domain.Product `json:"deletedProduct"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}
