package dto

import (
	"github.com/dmitryhil/vineweb/internal/domain"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
)

type OrderListResponse struct {
	Orders     []domain.Order    `json:"orders"`
	Pagination pkgdto.Pagination `json:"pagination"`
}
