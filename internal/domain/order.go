package domain

import "time"

// Order status values travel on the wire and in storage exactly as the
// front ends expect them.
const (
	OrderStatusPending   = "Pendente"
	OrderStatusCompleted = "Concluido"
	OrderStatusCancelled = "Cancelado"
)

// ValidOrderStatus reports whether s is one of the closed status enum values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents one payroll-deduction order submission.
// OriginalTotal is captured the first time the order is edited and never
// overwritten again; Total always holds the current value. Version counts
// item replacements for audit purposes.
type Order struct {
	ID            int64      `gorm:"primaryKey" json:"id,string"`
	EmployeeID    int64      `gorm:"index" json:"funcionario_id,string"`
	OrderDate     time.Time  `gorm:"index" json:"data_pedido"`
	Total         float64    `json:"valor_total"`
	OriginalTotal *float64   `json:"valor_total_original,omitempty"`
	Status        string     `gorm:"size:32" json:"status"`
	Consent       bool       `json:"aceita_desconto"`
	Installments  int        `json:"numero_parcelas"`
	Edited        bool       `json:"editado"`
	EditedAt      *time.Time `json:"editado_em,omitempty"`
	EditNote      string     `json:"observacoes_edicao"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "pedidos"
}

// OrderItem belongs to exactly one order. Product code and description are
// snapshotted at order time, not live references into the catalog. The whole
// set is replaced on edit, never patched row by row.
type OrderItem struct {
	ID          int64   `gorm:"primaryKey" json:"id,string"`
	OrderID     int64   `gorm:"index" json:"pedido_id,string"`
	ProductCode string  `json:"codigo_produto"`
	Description string  `json:"descricao_produto"`
	Quantity    float64 `json:"quantidade"`
	UnitPrice   float64 `json:"preco_unitario"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "itens_pedido"
}

// Subtotal is derived at read time and never stored.
func (i OrderItem) Subtotal() float64 {
	return i.Quantity * i.UnitPrice
}
