package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostDraftEntry una entrada del borrador enviada al commit.
// ID vacío = línea nueva. Las líneas vinculadas a inventario que se borran
// deben venir con ConfirmRestock=true (el borrado devuelve stock).
type CostDraftEntry struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	Deleted        bool            `json:"deleted"`
	ConfirmRestock bool            `json:"confirm_restock"`
}

// CommitCostsRequest borrador completo de una sesión de edición.
type CommitCostsRequest struct {
	Entries []CostDraftEntry `json:"entries"`
}

// CostItemResponse salida de una línea de costo.
type CostItemResponse struct {
	ID               string           `json:"id"`
	WorkOrderID      string           `json:"work_order_id"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPriceCents   int64            `json:"unit_price_cents"`
	TotalCents       int64            `json:"total_cents"`
	InventoryItemID  *string          `json:"inventory_item_id,omitempty"`
	OriginalQuantity *decimal.Decimal `json:"original_quantity,omitempty"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CommitItemResult resultado por línea del commit (tri-estado).
type CommitItemResult struct {
	Ref              string           `json:"ref"`
	Op               string           `json:"op"`     // create, update, delete
	Status           string           `json:"status"` // committed, failed, skipped
	Error            string           `json:"error,omitempty"`
	Shortage         *ShortageDetail  `json:"shortage,omitempty"`
	StockNotRestored bool             `json:"stock_not_restored,omitempty"`
}

// ShortageDetail números exactos de una falta de stock.
type ShortageDetail struct {
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// CommitCostsResponse resultado estructurado del commit completo: qué líneas
// se confirmaron, cuáles fallaron y cuáles se omitieron, para que la sesión
// pueda reanudar solo lo fallido.
type CommitCostsResponse struct {
	Committed int                `json:"committed"`
	Failed    int                `json:"failed"`
	Skipped   int                `json:"skipped"`
	Results   []CommitItemResult `json:"results"`
}

// AddFromInventoryRequest consumir stock hacia una orden de trabajo.
// unit_price_cents nulo = usar el costo unitario vigente del ítem.
type AddFromInventoryRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPriceCents  *int64          `json:"unit_price_cents"`
}
