package ordering

import (
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/pkg/common"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Repository bundles the transactional operations over employees, orders and
// line items. Each mutating operation runs inside a single transaction; the
// status update relies on the atomicity of one UPDATE statement.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type CreateOrderInput struct {
	Name         string
	Sector       string
	Badge        string
	Consent      bool
	Installments int
	Items        []LineItem
}

// CreateOrder upserts the employee by badge, inserts the order row and bulk
// inserts its line items, all in one transaction. It returns the new order id
// and computed total.
func (r *Repository) CreateOrder(in CreateOrderInput) (int64, float64, error) {
	name := strings.TrimSpace(in.Name)
	sector := strings.TrimSpace(in.Sector)
	badge := strings.TrimSpace(in.Badge)
	if name == "" || sector == "" || badge == "" {
		return 0, 0, validationf("name, sector and badge are required")
	}
	if err := ValidateLineItems(in.Items); err != nil {
		return 0, 0, err
	}

	total, err := ComputeTotal(in.Items)
	if err != nil {
		return 0, 0, err
	}

	installments := ClampInstallments(in.Installments)
	if total < InstallmentFloor && installments > 1 {
		return 0, 0, validationf("orders under %.2f can only be paid in a single installment", InstallmentFloor)
	}

	orderID := common.UUIDint64()
	now := time.Now()

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var employee domain.Employee
		err := tx.Where("badge = ?", badge).First(&employee).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			employee = domain.Employee{
				ID:     common.UUIDint64(),
				Name:   name,
				Sector: sector,
				Badge:  badge,
			}
			if err := tx.Create(&employee).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// latest submission wins
			if err := tx.Model(&domain.Employee{}).Where("id = ?", employee.ID).
				Updates(map[string]interface{}{"name": name, "sector": sector, "updated_at": now}).Error; err != nil {
				return err
			}
		}

		order := domain.Order{
			ID:           orderID,
			EmployeeID:   employee.ID,
			OrderDate:    now,
			Total:        total,
			Status:       domain.OrderStatusPending,
			Consent:      in.Consent,
			Installments: installments,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]domain.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, domain.OrderItem{
				ID:          common.UUIDint64(),
				OrderID:     orderID,
				ProductCode: strings.TrimSpace(it.Code),
				Description: strings.TrimSpace(it.Description),
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return 0, 0, pkgerrors.Wrap(err, "create order")
	}
	return orderID, total, nil
}

// OrderRow is one denormalized listing row.
type OrderRow struct {
	ID           int64      `json:"id,string"`
	OrderDate    time.Time  `json:"data_pedido"`
	Total        float64    `json:"valor_total"`
	Status       string     `json:"status"`
	Consent      bool       `json:"aceita_desconto"`
	Installments int        `json:"numero_parcelas"`
	Edited       bool       `json:"editado"`
	EditedAt     *time.Time `json:"editado_em"`
	EmployeeName string     `json:"funcionario_nome"`
	Sector       string     `json:"setor"`
	Badge        string     `json:"cracha"`
}

// ListOrders returns orders matching the filter, newest first, with the
// employee name, sector and badge denormalized onto each row.
func (r *Repository) ListOrders(f PeriodFilter) ([]OrderRow, error) {
	rows := make([]OrderRow, 0)
	err := r.db.Table("pedidos").
		Select("pedidos.id, pedidos.order_date, pedidos.total, pedidos.status, pedidos.consent, " +
			"pedidos.installments, pedidos.edited, pedidos.edited_at, " +
			"funcionarios.name AS employee_name, funcionarios.sector, funcionarios.badge").
		Joins("LEFT JOIN funcionarios ON funcionarios.id = pedidos.employee_id").
		Scopes(f.Scope("pedidos.order_date")).
		Order("pedidos.order_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list orders")
	}
	return rows, nil
}

// OrderDetail is a full order with the employee fields denormalized.
type OrderDetail struct {
	domain.Order
	EmployeeName string `json:"funcionario_nome"`
	Sector       string `json:"setor"`
	Badge        string `json:"cracha"`
}

// GetOrderDetail loads one order with its employee and line items.
func (r *Repository) GetOrderDetail(orderID int64) (*OrderDetail, []domain.OrderItem, error) {
	var order domain.Order
	err := r.db.Where("id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "load order")
	}

	detail := &OrderDetail{Order: order}
	var employee domain.Employee
	if err := r.db.Where("id = ?", order.EmployeeID).First(&employee).Error; err == nil {
		detail.EmployeeName = employee.Name
		detail.Sector = employee.Sector
		detail.Badge = employee.Badge
	}

	var items []domain.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error; err != nil {
		return nil, nil, pkgerrors.Wrap(err, "load order items")
	}
	return detail, items, nil
}

// ReplaceOrderItems validates the replacement items, recomputes the total and
// swaps the whole line-item set in one transaction. The original total is
// captured on the first edit only and never overwritten afterwards. The
// installment floor is deliberately not re-checked here; it is a
// submission-time rule.
func (r *Repository) ReplaceOrderItems(orderID int64, items []LineItem, editNote string) (float64, error) {
	if err := ValidateLineItems(items); err != nil {
		return 0, err
	}
	newTotal, err := ComputeTotal(items)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := tx.Where("id = ?", orderID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"original_total": gorm.Expr("COALESCE(original_total, total)"),
			"total":          newTotal,
			"edited":         true,
			"edited_at":      now,
			"edit_note":      editNote,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     now,
		}
		if err := tx.Model(&domain.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		replacement := make([]domain.OrderItem, 0, len(items))
		for _, it := range items {
			replacement = append(replacement, domain.OrderItem{
				ID:          common.UUIDint64(),
				OrderID:     orderID,
				ProductCode: strings.TrimSpace(it.Code),
				Description: strings.TrimSpace(it.Description),
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		return tx.Create(&replacement).Error
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return 0, ErrOrderNotFound
		}
		return 0, pkgerrors.Wrap(err, "replace order items")
	}
	return newTotal, nil
}

// UpdateStatus sets the order status. It is a single UPDATE statement with no
// explicit transaction.
func (r *Repository) UpdateStatus(orderID int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return validationf("invalid status")
	}
	res := r.db.Model(&domain.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// LookupEmployee reads the employee directory snapshot to pre-fill the
// submission form. It never touches the transactional employee table.
func (r *Repository) LookupEmployee(badge int64) (*domain.DirectoryEmployee, error) {
	var entry domain.DirectoryEmployee
	err := r.db.Where("badge = ?", badge).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "lookup directory employee")
	}
	return &entry, nil
}

// ListAllItems returns every line item ordered by owning order id, for the
// full orders report.
func (r *Repository) ListAllItems() ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	if err := r.db.Order("order_id").Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list order items")
	}
	return items, nil
}
